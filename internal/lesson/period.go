package lesson

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// DefaultBaseWeeks 未配置 (次数, 堂数) 组合时的基础周数
const DefaultBaseWeeks = 5

// SpanKey 周数表键
type SpanKey struct {
	Frequency   int // 已归一化：1、2、3（3 表示 3 次及以上）
	LessonCount int
}

// WeekSpanTable 收费周期周数表
type WeekSpanTable struct {
	base map[SpanKey]int
	// direct 中的堂数直接以堂数作为周数，不区分每周次数
	// 📝 10 / 30 堂的特例待业务方确认是否保留
	direct map[int]bool
}

// NewWeekSpanTable 创建周数表
func NewWeekSpanTable(base map[SpanKey]int, directCounts ...int) *WeekSpanTable {
	t := &WeekSpanTable{
		base:   make(map[SpanKey]int, len(base)),
		direct: make(map[int]bool, len(directCounts)),
	}
	for k, v := range base {
		t.base[SpanKey{Frequency: NormalizeFrequency(k.Frequency), LessonCount: k.LessonCount}] = v
	}
	for _, c := range directCounts {
		t.direct[c] = true
	}
	return t
}

// NormalizeFrequency 每周次数归一化为 1、2、3
func NormalizeFrequency(f int) int {
	switch {
	case f <= 1:
		return 1
	case f == 2:
		return 2
	default:
		return 3
	}
}

// Base 基础周数（未计假期顺延）
func (t *WeekSpanTable) Base(lessonCount, frequency int) int {
	if t.direct[lessonCount] {
		return lessonCount
	}
	if w, ok := t.base[SpanKey{Frequency: NormalizeFrequency(frequency), LessonCount: lessonCount}]; ok {
		return w
	}
	return DefaultBaseWeeks
}

// WeekSpan 收费周数 = 基础周数 + 每个假期冲突顺延一周
func (t *WeekSpanTable) WeekSpan(lessonCount, frequency int, skipped []civil.Date) int {
	return t.Base(lessonCount, frequency) + len(skipped)
}

// Entries 返回周数表副本
func (t *WeekSpanTable) Entries() map[SpanKey]int {
	out := make(map[SpanKey]int, len(t.base))
	for k, v := range t.base {
		out[k] = v
	}
	return out
}

// BillingPeriod 收费周期
type BillingPeriod struct {
	StartDate civil.Date
	Weeks     int
	EndDate   civil.Date
}

// NewBillingPeriod 结束日 = 开始日 + weeks 周 − 1 天
func NewBillingPeriod(start civil.Date, weeks int) (BillingPeriod, error) {
	if weeks < 1 {
		return BillingPeriod{}, fmt.Errorf("%w: 收费周数必须为正数 (%d)", ErrInvalidRequest, weeks)
	}
	return BillingPeriod{
		StartDate: start,
		Weeks:     weeks,
		EndDate:   start.AddDays(weeks*7 - 1),
	}, nil
}
