package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
)

// ── 公众假期 ICS 导入 ──────────────────────────────────────
//
// 政府公布的假期日历为全日事件：DTSTART;VALUE=DATE + SUMMARY。
// 跨日事件按 [DTSTART, DTEND) 展开为逐日假期，单个事件最多展开 icsMaxEventDays 天。
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
	icsMaxEventDays = 31
)

// FetchICSContent 从 URL 获取 ICS 内容，webcal:// 视为 https://
func FetchICSContent(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("构造 ICS 请求失败: %w", err)
	}
	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseHolidayICS 解析假期日历；year > 0 时只保留该年份
// 同一天出现多个事件时保留第一个名称，结果按日期升序
func ParseHolidayICS(reader io.Reader, year int) ([]lesson.Holiday, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	seen := make(map[civil.Date]bool)
	var out []lesson.Holiday
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}
		start, ok := icsDate(evt, ics.ComponentPropertyDtStart)
		if !ok {
			continue
		}
		end, ok := icsDate(evt, ics.ComponentPropertyDtEnd)
		if !ok || !start.Before(end) {
			end = start.AddDays(1)
		}
		if limit := start.AddDays(icsMaxEventDays); end.After(limit) {
			end = limit
		}

		name := strings.TrimSpace(summary.Value)
		for d := start; d.Before(end); d = d.AddDays(1) {
			if (year > 0 && d.Year != year) || seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, lesson.Holiday{Date: d, Name: name})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// icsDate 读取日期属性，兼容 VALUE=DATE 与带时间的写法（只取日期部分）
func icsDate(evt *ics.VEvent, prop ics.ComponentProperty) (civil.Date, bool) {
	p := evt.GetProperty(prop)
	if p == nil {
		return civil.Date{}, false
	}
	val := strings.TrimSpace(p.Value)
	if len(val) < 8 {
		return civil.Date{}, false
	}
	t, err := time.Parse("20060102", val[:8])
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// HolidayImporter 将解析后的假期写入 public_holidays
type HolidayImporter struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
}

// NewHolidayImporter 创建 HolidayImporter
func NewHolidayImporter(repo repository.CatalogRepository, logger *zap.Logger) *HolidayImporter {
	return &HolidayImporter{repo: repo, logger: logger}
}

// Import 解析并写入，已存在的日期更新名称；返回写入条数
func (h *HolidayImporter) Import(ctx context.Context, reader io.Reader, year int) (int, error) {
	holidays, err := ParseHolidayICS(reader, year)
	if err != nil {
		return 0, err
	}
	if len(holidays) == 0 {
		return 0, nil
	}

	rows := make([]model.PublicHoliday, 0, len(holidays))
	for _, hd := range holidays {
		rows = append(rows, model.PublicHoliday{HolidayDate: hd.Date.In(time.UTC), Name: hd.Name})
	}
	if err := h.repo.UpsertHolidays(ctx, rows); err != nil {
		h.logger.Error("写入公众假期失败", zap.Error(err))
		return 0, err
	}

	h.logger.Info("公众假期导入完成", zap.Int("count", len(rows)), zap.Int("year", year))
	return len(rows), nil
}
