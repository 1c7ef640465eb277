package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestExportService(t *testing.T) ExportService {
	t.Helper()
	quotes, _ := newTestQuoteService(t)
	return NewExportService(quotes, "Asia/Hong_Kong", zap.NewNop())
}

func TestExportService_Text(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.InvoiceNo = "INV-0001"
	req.ValueAddedCourses = []string{"高效寫字"}
	req.OptionalItems = []string{"現金到校繳付24堂學費，送現金券"}

	text, err := svc.Text(context.Background(), req)
	if err != nil {
		t.Fatalf("Text 失败: %v", err)
	}

	wantLines := []string{
		"創憶學坊(淘大) 課程安排",
		"單號：INV-0001",
		"收費期：06/01/2025 至 09/02/2025（5 週）",
		"1. 陳大文 | 2025年 1 月 6 日 (星期一) | 9:30-11:00 | 創憶學坊(淘大)分校",
		"4. 陳大文 | 2025年 1 月 27 日 (星期一) | 9:30-11:00 | 創憶學坊(淘大)分校",
		"增值課程：$100 × 4 = $400",
		"現金到校繳付24堂學費，送現金券：-$50",
		"合計：$1680",
		"1. " + PolicyNotes[0],
	}
	for _, line := range wantLines {
		if !strings.Contains(text, line+"\n") {
			t.Errorf("文本缺少行 %q\n实际:\n%s", line, text)
		}
	}
	if strings.Contains(text, "假期順延") {
		t.Error("无顺延时不应输出顺延段落")
	}
}

func TestExportService_Text_WithSkipped(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.Cancellations = []string{"2025-01-13"}

	text, err := svc.Text(context.Background(), req)
	if err != nil {
		t.Fatalf("Text 失败: %v", err)
	}
	if !strings.Contains(text, "假期順延：\n13/01/2025 (星期一) 停課\n") {
		t.Errorf("顺延段落错误:\n%s", text)
	}
}

func TestExportService_RefusesUnpriced(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.LessonCount = 5 // (1, 5) 未配置价格

	if _, err := svc.Text(context.Background(), req); !errors.Is(err, ErrExportUnpriced) {
		t.Errorf("Text 期望 ErrExportUnpriced，实际 %v", err)
	}
	if _, _, err := svc.Document(context.Background(), req); !errors.Is(err, ErrExportUnpriced) {
		t.Errorf("Document 期望 ErrExportUnpriced，实际 %v", err)
	}
	// 日历不含费用，照常导出
	if _, _, err := svc.Calendar(context.Background(), req); err != nil {
		t.Errorf("Calendar 不应因价格未配置失败: %v", err)
	}
}

func TestExportService_PropagatesQuoteError(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.Branch = "旺角"

	if _, _, err := svc.Document(context.Background(), req); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("期望 ErrUnknownOption，实际 %v", err)
	}
}

func TestExportService_Document(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.InvoiceNo = "INV-0001"
	req.StartDate = "2025-04-14"
	req.LessonCount = 4

	buf, filename, err := svc.Document(context.Background(), req)
	if err != nil {
		t.Fatalf("Document 失败: %v", err)
	}
	if filename != "收費單_陳大文_20250414.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("无法读取生成的 Excel: %v", err)
	}
	defer f.Close()

	checks := map[string]string{
		"A1": "創憶學坊(淘大) 收費單",
		"B2": "陳大文",
		"D2": "INV-0001",
		"B5": "14/04/2025 至 01/06/2025", // 5 周 + 2 次顺延
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(documentSheet, cell)
		if err != nil {
			t.Fatalf("读取 %s 失败: %v", cell, err)
		}
		if got != want {
			t.Errorf("%s 期望 %q，实际 %q", cell, want, got)
		}
	}

	// 21/4 复活节星期一、5/5 佛诞均顺延
	rows, err := f.GetRows(documentSheet)
	if err != nil {
		t.Fatalf("GetRows 失败: %v", err)
	}
	var lessonDates, skippedReasons []string
	section := ""
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		switch r[0] {
		case "堂數", "順延日期":
			section = r[0]
			continue
		}
		switch {
		case section == "堂數" && len(r) >= 2:
			lessonDates = append(lessonDates, r[1])
		case section == "順延日期" && len(r) >= 3:
			skippedReasons = append(skippedReasons, r[2])
		}
	}
	wantDates := []string{"14/04/2025", "28/04/2025", "12/05/2025", "19/05/2025"}
	if strings.Join(lessonDates, ",") != strings.Join(wantDates, ",") {
		t.Errorf("课堂表期望 %v，实际 %v", wantDates, lessonDates)
	}
	if strings.Join(skippedReasons, ",") != "復活節星期一,佛誕" {
		t.Errorf("顺延表错误: %v", skippedReasons)
	}
}

func TestExportService_Calendar(t *testing.T) {
	svc := newTestExportService(t)

	body, filename, err := svc.Calendar(context.Background(), baseQuoteRequest())
	if err != nil {
		t.Fatalf("Calendar 失败: %v", err)
	}
	if filename != "課程_陳大文_20250106.ics" {
		t.Errorf("文件名错误: %s", filename)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("生成的 ICS 无法解析: %v", err)
	}
	events := cal.Events()
	if len(events) != 4 {
		t.Fatalf("期望 4 个事件，实际 %d", len(events))
	}

	// 9:30 香港时间 = 01:30 UTC
	start := events[0].GetProperty(ics.ComponentPropertyDtStart)
	if start == nil || start.Value != "20250106T013000Z" {
		t.Errorf("DTSTART 错误: %+v", start)
	}
	end := events[0].GetProperty(ics.ComponentPropertyDtEnd)
	if end == nil || end.Value != "20250106T030000Z" {
		t.Errorf("DTEND 错误: %+v", end)
	}
	loc := events[0].GetProperty(ics.ComponentPropertyLocation)
	if loc == nil || loc.Value != "創憶學坊(淘大)" {
		t.Errorf("LOCATION 错误: %+v", loc)
	}

	// 重复导出 UID 不变
	body2, _, _ := svc.Calendar(context.Background(), baseQuoteRequest())
	cal2, _ := ics.ParseCalendar(bytes.NewReader(body2))
	if cal2.Events()[0].Id() != events[0].Id() {
		t.Error("同一课堂的 UID 应稳定")
	}
}

func TestExportService_Calendar_AllDayWithoutTimeSlot(t *testing.T) {
	svc := newTestExportService(t)

	req := baseQuoteRequest()
	req.Days = []dto.LessonDayRequest{{Weekday: "Monday"}}
	body, _, err := svc.Calendar(context.Background(), req)
	if err != nil {
		t.Fatalf("Calendar 失败: %v", err)
	}
	if !strings.Contains(string(body), "DTSTART;VALUE=DATE:20250106") {
		t.Errorf("无时段应导出全天事件\n实际:\n%s", body)
	}
	if !strings.Contains(string(body), "DTEND;VALUE=DATE:20250107") {
		t.Errorf("全天事件应在次日结束\n实际:\n%s", body)
	}

	text, err := svc.Text(context.Background(), req)
	if err != nil {
		t.Fatalf("Text 失败: %v", err)
	}
	if !strings.Contains(text, "1. 陳大文 | 2025年 1 月 6 日 (星期一) | 創憶學坊(淘大)分校\n") {
		t.Errorf("无时段时不应输出空时段\n实际:\n%s", text)
	}
}

func TestSlotTimes(t *testing.T) {
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.FixedZone("HKT", 8*3600))

	start, end, ok := slotTimes(day, "17:30-19:00")
	if !ok {
		t.Fatal("期望解析成功")
	}
	if start.Hour() != 17 || start.Minute() != 30 || end.Hour() != 19 {
		t.Errorf("解析结果错误: %v - %v", start, end)
	}

	for _, bad := range []string{"", "全日", "11:00-9:30", "9:30-", "25:00-26:00"} {
		if _, _, ok := slotTimes(day, bad); ok {
			t.Errorf("%q 不应解析成功", bad)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[int64]string{0: "$0", 1680: "$1680", -50: "-$50"}
	for in, want := range cases {
		if got := formatMoney(in); got != want {
			t.Errorf("formatMoney(%d) 期望 %s，实际 %s", in, want, got)
		}
	}
}
