package lesson

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// DefaultHorizonDays 默认最多向后扫描约 10 年
const DefaultHorizonDays = 3653

// ScheduleRequest 排课输入
type ScheduleRequest struct {
	StartDate      civil.Date
	OccurrenceDays WeekdaySet
	LessonCount    int
}

// ScheduleResult 排课结果
//
//   - LessonDates 严格递增，长度等于 LessonCount，不含假期，星期均属 OccurrenceDays
//   - SkippedDates 为扫描过程中遇到的假期冲突，按日期升序，均早于最后一堂
type ScheduleResult struct {
	LessonDates  []civil.Date
	SkippedDates []civil.Date
}

// LastLesson 最后一堂课的日期；无课时返回零值
func (r *ScheduleResult) LastLesson() civil.Date {
	if len(r.LessonDates) == 0 {
		return civil.Date{}
	}
	return r.LessonDates[len(r.LessonDates)-1]
}

// Generator 排课生成器
type Generator struct {
	horizonDays int
}

// NewGenerator 创建生成器；horizonDays <= 0 时使用 DefaultHorizonDays
func NewGenerator(horizonDays int) *Generator {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Generator{horizonDays: horizonDays}
}

// Generate 自 StartDate 起逐日扫描：
// 星期命中且为假期 → 记入 SkippedDates（不占用堂数，也不在别处补回）；
// 星期命中且非假期 → 记入 LessonDates；排满 LessonCount 即停止。
func (g *Generator) Generate(req ScheduleRequest, holidays *HolidaySet) (*ScheduleResult, error) {
	if req.LessonCount < 0 {
		return nil, fmt.Errorf("%w: 堂数不能为负数 (%d)", ErrInvalidRequest, req.LessonCount)
	}
	if req.LessonCount == 0 {
		return &ScheduleResult{LessonDates: []civil.Date{}, SkippedDates: []civil.Date{}}, nil
	}
	if req.OccurrenceDays.Empty() {
		return nil, fmt.Errorf("%w: 未选择上课星期", ErrInvalidRequest)
	}
	if !req.StartDate.IsValid() {
		return nil, fmt.Errorf("%w: 开课日期无效 %s", ErrInvalidRequest, req.StartDate)
	}

	result := &ScheduleResult{
		LessonDates:  make([]civil.Date, 0, req.LessonCount),
		SkippedDates: []civil.Date{},
	}

	for offset := 0; offset < g.horizonDays; offset++ {
		d := req.StartDate.AddDays(offset)
		if !req.OccurrenceDays.Has(WeekdayOf(d)) {
			continue
		}
		if holidays.Contains(d) {
			result.SkippedDates = append(result.SkippedDates, d)
			continue
		}
		result.LessonDates = append(result.LessonDates, d)
		if len(result.LessonDates) == req.LessonCount {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: %d 天内仅排得 %d/%d 堂",
		ErrScheduleUnsatisfiable, g.horizonDays, len(result.LessonDates), req.LessonCount)
}
