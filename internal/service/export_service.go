package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
)

// ── 导出模块业务错误 ──

var (
	ErrExportUnpriced     = errors.New("主科价格未配置，不能生成收费单")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 三种导出共用报价计算：
//   - Document: 收费单 Excel (.xlsx)
//   - Calendar: 课堂日历 (.ics)，每堂一个 VEVENT
//   - Text: 供复制粘贴的纯文本，含注意事项
//
// 收费单与纯文本包含费用，价格未配置时拒绝导出；日历不含费用，照常导出。
type ExportService interface {
	Document(ctx context.Context, req *dto.QuoteRequest) (*bytes.Buffer, string, error)
	Calendar(ctx context.Context, req *dto.QuoteRequest) ([]byte, string, error)
	Text(ctx context.Context, req *dto.QuoteRequest) (string, error)
}

type exportService struct {
	quotes   QuoteService
	location *time.Location
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例；timezone 无法加载时使用 UTC+8
func NewExportService(quotes QuoteService, timezone string, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("加载时区失败，使用 UTC+8", zap.String("timezone", timezone), zap.Error(err))
		loc = time.FixedZone("HKT", 8*60*60)
	}
	return &exportService{quotes: quotes, location: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Document 收费单 Excel
// ═══════════════════════════════════════════════════════════
//
// 单个 Sheet "收費單"：
//   - 抬头：学生、单号、主科、增值课程、收费期
//   - 费用表：项目 | 金额
//   - 课堂表：堂数 | 日期 | 星期 | 时段
//   - 顺延表：日期 | 星期 | 原因（无顺延时省略）

const documentSheet = "收費單"

func (s *exportService) Document(ctx context.Context, req *dto.QuoteRequest) (*bytes.Buffer, string, error) {
	q, err := s.quotes.Build(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if !q.Priced() {
		return nil, "", fmt.Errorf("%w: %v", ErrExportUnpriced, q.PricingErr)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", documentSheet); err != nil {
		return nil, "", s.generateFail("重命名 Sheet", err)
	}
	if err := writeDocument(f, q); err != nil {
		return nil, "", s.generateFail("写入收费单", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFail("写入 Excel", err)
	}

	filename := fmt.Sprintf("收費單_%s_%s.xlsx", q.StudentName, compactDate(q.StartDate.String()))
	return buf, filename, nil
}

func writeDocument(f *excelize.File, q *Quote) error {
	sh := documentSheet
	w := &sheetWriter{f: f, sheet: sh}

	for col, width := range map[string]float64{"A": 10, "B": 26, "C": 14, "D": 18} {
		if err := f.SetColWidth(sh, col, col, width); err != nil {
			return err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(`"$"#,##0;-"$"#,##0`)})
	if err != nil {
		return err
	}

	// 抬头
	w.row = 1
	w.set("A", lesson.BranchLabel(q.Branch)+" 收費單")
	if err := f.MergeCell(sh, "A1", "D1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "D1", titleStyle); err != nil {
		return err
	}

	w.next()
	w.set("A", "學生", "B", q.StudentName, "C", "單號", "D", q.InvoiceNo)
	w.next()
	w.set("A", "主科", "B", strings.Join(q.Subjects, labelSeparator), "C", "每週堂數", "D", q.Frequency)
	w.next()
	w.set("A", "增值課程", "B", strings.Join(q.ValueAdded, labelSeparator), "C", "總堂數", "D", q.LessonCount)
	w.next()
	w.set("A", "收費期", "B", q.Period.String(), "C", "週數", "D", q.Period.Weeks)

	// 费用
	w.next()
	w.next()
	if err := w.header(headerStyle, "項目", "金額"); err != nil {
		return err
	}
	feeStart := w.row + 1
	w.next()
	w.set("A", "學費", "B", q.Fees.Tuition)
	w.next()
	w.set("A", "教材費", "B", q.Fees.Materials)
	if q.Fees.ValueAdded != 0 {
		w.next()
		w.set("A", fmt.Sprintf("增值課程 ($%d × %d)", q.Fees.ValueAddedUnit, q.LessonCount), "B", q.Fees.ValueAdded)
	}
	for _, item := range q.Fees.OptionalItems {
		w.next()
		w.set("A", item.Label, "B", item.Delta)
	}
	w.next()
	w.set("A", "合計", "B", q.Fees.Total)
	if err := f.SetCellStyle(sh, cellName("B", feeStart), cellName("B", w.row), moneyStyle); err != nil {
		return err
	}

	// 课堂
	w.next()
	w.next()
	if err := w.header(headerStyle, "堂數", "日期", "星期", "時段"); err != nil {
		return err
	}
	for _, l := range q.Lessons {
		w.next()
		w.set("A", l.Index, "B", lesson.FormatDate(l.Date), "C", l.Weekday.Chinese(), "D", l.TimeSlot)
	}

	// 顺延
	if len(q.Skipped) > 0 {
		w.next()
		w.next()
		if err := w.header(headerStyle, "順延日期", "星期", "原因"); err != nil {
			return err
		}
		for _, sk := range q.Skipped {
			w.next()
			w.set("A", lesson.FormatDate(sk.Date), "B", sk.Weekday.Chinese(), "C", sk.Reason)
		}
	}

	return w.err
}

// sheetWriter 逐行写入，记录第一个错误
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) next() { w.row++ }

// set 以 (列, 值) 成对写入当前行
func (w *sheetWriter) set(pairs ...interface{}) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if w.err != nil {
			return
		}
		col, _ := pairs[i].(string)
		w.err = w.f.SetCellValue(w.sheet, cellName(col, w.row), pairs[i+1])
	}
}

func (w *sheetWriter) header(style int, titles ...string) error {
	cols := []string{"A", "B", "C", "D"}
	for i, t := range titles {
		w.set(cols[i], t)
	}
	if w.err != nil {
		return w.err
	}
	return w.f.SetCellStyle(w.sheet, cellName("A", w.row), cellName(cols[len(titles)-1], w.row), style)
}

func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func strPtr(s string) *string { return &s }

// ═══════════════════════════════════════════════════════════
// Calendar 课堂日历 .ics
// ═══════════════════════════════════════════════════════════

const icsProductID = "-//創憶學坊//Lesson Schedule//ZH"

func (s *exportService) Calendar(ctx context.Context, req *dto.QuoteRequest) ([]byte, string, error) {
	q, err := s.quotes.Build(ctx, req)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(fmt.Sprintf("%s 課程", q.StudentName))
	cal.SetXWRTimezone(s.location.String())

	now := time.Now().UTC()
	location := lesson.BranchLabel(q.Branch)
	summary := strings.Join(q.Subjects, labelSeparator)

	for _, l := range q.Lessons {
		// UID 由分校、学生与日期决定
		uid := uuid.NewSHA1(uuid.NameSpaceURL, []byte(q.Branch+"/"+q.StudentName+"/"+l.Date.String())).String()

		ev := cal.AddEvent(uid + "@lesson-schedule")
		ev.SetDtStampTime(now)
		ev.SetSummary(fmt.Sprintf("%s 第%d堂 %s", q.StudentName, l.Index, summary))
		ev.SetLocation(location)
		desc := lesson.FormatChineseDate(l.Date)
		if l.TimeSlot != "" {
			desc += " | " + l.TimeSlot
		}
		ev.SetDescription(desc)

		if start, end, ok := slotTimes(l.Date.In(s.location), l.TimeSlot); ok {
			ev.SetStartAt(start)
			ev.SetEndAt(end)
		} else {
			day := l.Date.In(time.UTC)
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	filename := fmt.Sprintf("課程_%s_%s.ics", q.StudentName, compactDate(q.StartDate.String()))
	return []byte(cal.Serialize()), filename, nil
}

// slotTimes 解析 "9:30-11:00" 为当日起止时间
func slotTimes(day time.Time, slot string) (time.Time, time.Time, bool) {
	from, to, found := strings.Cut(slot, "-")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	st, err := time.Parse("15:04", strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	et, err := time.Parse("15:04", strings.TrimSpace(to))
	if err != nil || !et.After(st) {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, st.Hour(), st.Minute(), 0, 0, loc)
	end := time.Date(y, m, d, et.Hour(), et.Minute(), 0, 0, loc)
	return start, end, true
}

// ═══════════════════════════════════════════════════════════
// Text 纯文本
// ═══════════════════════════════════════════════════════════

// PolicyNotes 文本导出末尾的注意事项
var PolicyNotes = []string{
	"學生如缺席，該堂不設補堂，學費恕不退還。",
	"如因病缺席並於一星期內出示醫生證明，可於收費期內安排補堂一次。",
	"上課前兩小時內如天文台懸掛八號或以上烈風信號或黑色暴雨警告，當日課堂暫停，順延至收費期後補回。",
}

func (s *exportService) Text(ctx context.Context, req *dto.QuoteRequest) (string, error) {
	q, err := s.quotes.Build(ctx, req)
	if err != nil {
		return "", err
	}
	if !q.Priced() {
		return "", fmt.Errorf("%w: %v", ErrExportUnpriced, q.PricingErr)
	}
	return RenderText(q), nil
}

// RenderText 生成复制粘贴用文本，课堂行格式：
// 1. 陳大文 | 2025年 1 月 6 日 (星期一) | 9:30-11:00 | 創憶學坊(淘大)分校
func RenderText(q *Quote) string {
	var b strings.Builder
	branch := lesson.BranchLabel(q.Branch)

	fmt.Fprintf(&b, "%s 課程安排\n", branch)
	fmt.Fprintf(&b, "學生：%s\n", q.StudentName)
	if q.InvoiceNo != "" {
		fmt.Fprintf(&b, "單號：%s\n", q.InvoiceNo)
	}
	fmt.Fprintf(&b, "主科：%s\n", strings.Join(q.Subjects, labelSeparator))
	if len(q.ValueAdded) > 0 {
		fmt.Fprintf(&b, "增值課程：%s\n", strings.Join(q.ValueAdded, labelSeparator))
	}
	fmt.Fprintf(&b, "收費期：%s（%d 週）\n", q.Period.String(), q.Period.Weeks)

	b.WriteString("\n")
	for _, l := range q.Lessons {
		parts := []string{q.StudentName, lesson.FormatChineseDate(l.Date)}
		if l.TimeSlot != "" {
			parts = append(parts, l.TimeSlot)
		}
		fmt.Fprintf(&b, "%d. %s | %s分校\n", l.Index, strings.Join(parts, " | "), branch)
	}

	if len(q.Skipped) > 0 {
		b.WriteString("\n假期順延：\n")
		for _, sk := range q.Skipped {
			fmt.Fprintf(&b, "%s %s\n", lesson.FormatDateWithWeekday(sk.Date), sk.Reason)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "學費：%s\n", formatMoney(q.Fees.Tuition))
	fmt.Fprintf(&b, "教材費：%s\n", formatMoney(q.Fees.Materials))
	if q.Fees.ValueAdded != 0 {
		fmt.Fprintf(&b, "增值課程：%s × %d = %s\n",
			formatMoney(q.Fees.ValueAddedUnit), q.LessonCount, formatMoney(q.Fees.ValueAdded))
	}
	for _, item := range q.Fees.OptionalItems {
		fmt.Fprintf(&b, "%s：%s\n", item.Label, formatMoney(item.Delta))
	}
	fmt.Fprintf(&b, "合計：%s\n", formatMoney(q.Fees.Total))

	b.WriteString("\n注意事項：\n")
	for i, note := range PolicyNotes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, note)
	}
	return b.String()
}

func formatMoney(v int64) string {
	if v < 0 {
		return fmt.Sprintf("-$%d", -v)
	}
	return fmt.Sprintf("$%d", v)
}

// compactDate 2025-01-06 → 20250106
func compactDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

func (s *exportService) generateFail(step string, err error) error {
	s.logger.Error("生成收费单失败", zap.String("step", step), zap.Error(err))
	return fmt.Errorf("%w: %s", ErrExportGenerateFail, step)
}
