package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
)

func newTestCatalog(t *testing.T) *lesson.Catalog {
	t.Helper()
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog 失败: %v", err)
	}
	return catalog
}

func newTestQuoteService(t *testing.T) (QuoteService, *lesson.Catalog) {
	t.Helper()
	catalog := newTestCatalog(t)
	return NewQuoteService(catalog, 0, zap.NewNop()), catalog
}

// baseQuoteRequest 2025-01-06 起每周一上课 4 堂
func baseQuoteRequest() *dto.QuoteRequest {
	return &dto.QuoteRequest{
		StudentName: "陳大文",
		Branch:      "淘大",
		LessonCount: 4,
		StartDate:   "2025-01-06",
		Days:        []dto.LessonDayRequest{{Weekday: "Monday", TimeSlot: "9:30-11:00"}},
		Subjects:    []string{"中文記憶閱讀"},
	}
}

func ymd(y, m, day int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: day}
}

func warningCodes(ws []dto.Warning) []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

func hasWarning(ws []dto.Warning, code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════
// Build
// ═══════════════════════════════════════════════════════════

func TestQuoteService_Build_FourMondays(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	q, err := svc.Build(context.Background(), baseQuoteRequest())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	want := []civil.Date{ymd(2025, 1, 6), ymd(2025, 1, 13), ymd(2025, 1, 20), ymd(2025, 1, 27)}
	if len(q.Lessons) != len(want) {
		t.Fatalf("期望 %d 堂，实际 %d", len(want), len(q.Lessons))
	}
	for i, l := range q.Lessons {
		if l.Date != want[i] {
			t.Errorf("第 %d 堂期望 %s，实际 %s", i+1, want[i], l.Date)
		}
		if l.Index != i+1 || l.TimeSlot != "9:30-11:00" || l.Weekday != lesson.Monday {
			t.Errorf("第 %d 堂明细错误: %+v", i+1, l)
		}
	}
	if len(q.Skipped) != 0 {
		t.Errorf("不应有顺延，实际 %v", q.Skipped)
	}
	if q.Frequency != 1 {
		t.Errorf("期望每周 1 堂，实际 %d", q.Frequency)
	}
	if q.Period.Weeks != 5 || q.Period.EndDate != ymd(2025, 2, 9) {
		t.Errorf("收费期错误: %+v", q.Period)
	}
	if q.Fees.Total != 1330 {
		t.Errorf("期望合计 1330，实际 %d", q.Fees.Total)
	}
	if !q.Priced() || len(q.Warnings) != 0 {
		t.Errorf("不应有提示，实际 %v", warningCodes(q.Warnings))
	}
}

func TestQuoteService_Build_WithoutTimeSlot(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.Days = []dto.LessonDayRequest{{Weekday: "Monday"}}
	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("不填时段应可报价: %v", err)
	}
	if len(q.Lessons) != 4 {
		t.Fatalf("期望 4 堂，实际 %d", len(q.Lessons))
	}
	for _, l := range q.Lessons {
		if l.TimeSlot != "" {
			t.Errorf("未填时段时课堂时段应为空，实际 %q", l.TimeSlot)
		}
	}
	if q.Fees.Total != 1330 {
		t.Errorf("时段不影响收费，期望 1330，实际 %d", q.Fees.Total)
	}
}

func TestQuoteService_Build_ValueAddedAndDiscount(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.ValueAddedCourses = []string{"高效寫字", "聆聽訓練"}
	req.OptionalItems = []string{"現金到校繳付24堂學費，送現金券"}

	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	// 1280 + 50 + 100×4 − 50，增值课程费只收一次
	if q.Fees.ValueAdded != 400 {
		t.Errorf("期望增值课程费 400，实际 %d", q.Fees.ValueAdded)
	}
	if q.Fees.OptionalTotal != -50 {
		t.Errorf("期望附加项目 -50，实际 %d", q.Fees.OptionalTotal)
	}
	if q.Fees.Total != 1680 {
		t.Errorf("期望合计 1680，实际 %d", q.Fees.Total)
	}
}

func TestQuoteService_Build_HolidaySkipped(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.StartDate = "2025-01-01"
	req.LessonCount = 2
	req.Days = []dto.LessonDayRequest{{Weekday: "Wednesday", TimeSlot: "14:00-15:30"}}

	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	if len(q.Skipped) != 1 || q.Skipped[0].Date != ymd(2025, 1, 1) || q.Skipped[0].Reason != "一月一日" {
		t.Errorf("期望 1/1 元旦顺延，实际 %+v", q.Skipped)
	}
	if q.Lessons[0].Date != ymd(2025, 1, 8) || q.Lessons[1].Date != ymd(2025, 1, 15) {
		t.Errorf("课堂日期错误: %+v", q.Lessons)
	}
	// (1, 2) 未配置：默认 5 周 + 1 次顺延
	if q.Period.Weeks != 6 {
		t.Errorf("期望 6 周，实际 %d", q.Period.Weeks)
	}
	if q.Priced() || !hasWarning(q.Warnings, WarnUnconfiguredPricing) {
		t.Errorf("期望价格未配置提示，实际 %v", warningCodes(q.Warnings))
	}
	if q.Fees.Tuition != 0 || q.Fees.Materials != 0 {
		t.Errorf("未配置价格时主科费用应为 0，实际 %+v", q.Fees)
	}
}

func TestQuoteService_Build_CancellationIsRequestScoped(t *testing.T) {
	svc, catalog := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.Cancellations = []string{"2025-01-13"}

	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	if len(q.Skipped) != 1 || q.Skipped[0].Reason != lesson.CancellationName {
		t.Fatalf("期望 13/1 停课顺延，实际 %+v", q.Skipped)
	}
	if last := q.Lessons[len(q.Lessons)-1].Date; last != ymd(2025, 2, 3) {
		t.Errorf("期望最后一堂 3/2，实际 %s", last)
	}
	if catalog.Holidays.Contains(ymd(2025, 1, 13)) {
		t.Error("停课日期不应写入共享假期表")
	}

	// 同一服务的下一个请求不受影响
	q2, err := svc.Build(context.Background(), baseQuoteRequest())
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(q2.Skipped) != 0 {
		t.Errorf("上一请求的停课不应影响本次，实际 %+v", q2.Skipped)
	}
}

func TestQuoteService_Build_TwoDaysPerWeek(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.LessonCount = 8
	req.Days = []dto.LessonDayRequest{
		{Weekday: "星期三", TimeSlot: "16:00-17:30"},
		{Weekday: "Monday", TimeSlot: "9:30-11:00"},
	}

	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	if q.Frequency != 2 {
		t.Errorf("期望每周 2 堂，实际 %d", q.Frequency)
	}
	if q.Lessons[1].Date != ymd(2025, 1, 8) || q.Lessons[1].TimeSlot != "16:00-17:30" {
		t.Errorf("第 2 堂应为 8/1 星期三 16:00-17:30，实际 %+v", q.Lessons[1])
	}
	if q.Fees.Tuition != 2480 || q.Fees.Materials != 100 {
		t.Errorf("(2, 8) 价格错误: %+v", q.Fees)
	}
	// 29/1 星期三为农历年初一，顺延一周
	if len(q.Skipped) != 1 || q.Skipped[0].Date != ymd(2025, 1, 29) {
		t.Errorf("期望 29/1 顺延，实际 %+v", q.Skipped)
	}
	if q.Period.Weeks != 6 {
		t.Errorf("期望 5 + 1 = 6 周，实际 %d", q.Period.Weeks)
	}
}

func TestQuoteService_Build_Warnings(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	declared := int64(1000)
	req := baseQuoteRequest()
	req.DeclaredFee = &declared
	req.OptionalItems = []string{"加購練習冊 (+$120)", "神秘優惠"}

	q, err := svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}

	if q.Fees.OptionalTotal != 120 {
		t.Errorf("期望附加项目 120，实际 %d", q.Fees.OptionalTotal)
	}
	if q.Fees.OptionalItems[0].Kind != lesson.OptionalFreeText {
		t.Errorf("期望自由输入项目，实际 %s", q.Fees.OptionalItems[0].Kind)
	}
	if !hasWarning(q.Warnings, WarnMalformedOptional) {
		t.Errorf("期望附加项目格式提示，实际 %v", warningCodes(q.Warnings))
	}
	if !hasWarning(q.Warnings, WarnDeclaredFeeMismatch) {
		t.Errorf("期望申报金额不符提示，实际 %v", warningCodes(q.Warnings))
	}

	matching := q.Fees.Total
	req.DeclaredFee = &matching
	req.OptionalItems = []string{"加購練習冊 (+$120)"}
	q, err = svc.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build 失败: %v", err)
	}
	if len(q.Warnings) != 0 {
		t.Errorf("金额一致时不应有提示，实际 %v", warningCodes(q.Warnings))
	}
}

func TestQuoteService_Build_Errors(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	tests := []struct {
		name   string
		mutate func(*dto.QuoteRequest)
		want   error
	}{
		{"未知分校", func(r *dto.QuoteRequest) { r.Branch = "旺角" }, ErrUnknownOption},
		{"未知主科", func(r *dto.QuoteRequest) { r.Subjects = []string{"數學"} }, ErrUnknownOption},
		{"未知增值课程", func(r *dto.QuoteRequest) { r.ValueAddedCourses = []string{"游泳"} }, ErrUnknownOption},
		{"未知时段", func(r *dto.QuoteRequest) { r.Days[0].TimeSlot = "8:00-9:00" }, ErrUnknownOption},
		{"星期重复", func(r *dto.QuoteRequest) {
			r.Days = append(r.Days, dto.LessonDayRequest{Weekday: "星期一", TimeSlot: "10:00-11:30"})
		}, lesson.ErrInvalidRequest},
		{"无效星期", func(r *dto.QuoteRequest) { r.Days[0].Weekday = "Funday" }, lesson.ErrInvalidRequest},
		{"无效开始日期", func(r *dto.QuoteRequest) { r.StartDate = "06/01/2025" }, lesson.ErrInvalidRequest},
		{"无效停课日期", func(r *dto.QuoteRequest) { r.Cancellations = []string{"2025-13-01"} }, lesson.ErrInvalidRequest},
		{"没有上课日", func(r *dto.QuoteRequest) { r.Days = nil }, lesson.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseQuoteRequest()
			tt.mutate(req)
			_, err := svc.Build(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际 %v", tt.want, err)
			}
		})
	}
}

func TestQuoteService_Build_Unsatisfiable(t *testing.T) {
	catalog := newTestCatalog(t)
	svc := NewQuoteService(catalog, 28, zap.NewNop())

	req := baseQuoteRequest()
	req.Cancellations = []string{"2025-01-06", "2025-01-13", "2025-01-20", "2025-01-27"}

	_, err := svc.Build(context.Background(), req)
	if !errors.Is(err, lesson.ErrScheduleUnsatisfiable) {
		t.Errorf("期望 ErrScheduleUnsatisfiable，实际 %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Quote
// ═══════════════════════════════════════════════════════════

func TestQuoteService_Quote_Response(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	req := baseQuoteRequest()
	req.Subjects = []string{"中文記憶閱讀", "英文拼音"}
	req.ValueAddedCourses = []string{"高效寫字"}
	req.Cancellations = []string{"2025-01-20"}

	resp, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("Quote 失败: %v", err)
	}

	if resp.BranchLabel != "創憶學坊(淘大)" {
		t.Errorf("分校显示名错误: %s", resp.BranchLabel)
	}
	if resp.Lessons[0].Date != "06/01/2025" || resp.Lessons[0].Weekday != "星期一" || resp.Lessons[0].ISODate != "2025-01-06" {
		t.Errorf("第一堂格式错误: %+v", resp.Lessons[0])
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].Date != "20/01/2025" || resp.Skipped[0].Reason != "停課" {
		t.Errorf("顺延格式错误: %+v", resp.Skipped)
	}
	// 5 周 + 1 次顺延
	if resp.Period.Weeks != 6 || resp.Period.Label != "06/01/2025 至 16/02/2025" {
		t.Errorf("收费期错误: %+v", resp.Period)
	}
	if resp.Subjects != "中文記憶閱讀 / 英文拼音" || resp.ValueAdded != "高效寫字" {
		t.Errorf("科目连接错误: %q / %q", resp.Subjects, resp.ValueAdded)
	}
	if resp.Warnings == nil {
		t.Error("Warnings 应为空数组而非 nil")
	}
}
