package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
)

// ── 报价模块业务错误 ──

// ErrUnknownOption 分校 / 时段 / 科目 / 增值课程不在表单选项内
var ErrUnknownOption = errors.New("选项不存在")

// 报价提示代码
const (
	WarnUnconfiguredPricing = "UNCONFIGURED_PRICING"
	WarnMalformedOptional   = "MALFORMED_OPTIONAL_ITEM"
	WarnDeclaredFeeMismatch = "DECLARED_FEE_MISMATCH"
	labelSeparator          = " / "
)

// LessonEntry 单堂课
type LessonEntry struct {
	Index    int
	Date     civil.Date
	Weekday  lesson.Weekday
	TimeSlot string
}

// SkippedEntry 因假期或停课未上课的日期
type SkippedEntry struct {
	Date    civil.Date
	Weekday lesson.Weekday
	Reason  string
}

// Quote 一次报价的完整计算结果，报价与导出共用
type Quote struct {
	StudentName string
	Branch      string
	InvoiceNo   string
	StartDate   civil.Date
	Frequency   int
	LessonCount int
	Lessons     []LessonEntry
	Skipped     []SkippedEntry
	Period      lesson.BillingPeriod
	Fees        lesson.FeeBreakdown
	Subjects    []string
	ValueAdded  []string
	Warnings    []dto.Warning

	// PricingErr 非空表示 (次数, 堂数) 未配置价格，费用中的主科部分为 0
	PricingErr error
}

// Priced 主科价格是否已配置
func (q *Quote) Priced() bool { return q.PricingErr == nil }

// QuoteService 报价业务接口
type QuoteService interface {
	// Build 校验请求并计算排课与费用
	Build(ctx context.Context, req *dto.QuoteRequest) (*Quote, error)
	// Quote 计算并转换为响应结构
	Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
}

type quoteService struct {
	catalog   *lesson.Catalog
	generator *lesson.Generator
	logger    *zap.Logger
}

// NewQuoteService 创建 QuoteService 实例
// catalog 只读，可被并发请求共享；每个请求的停课日期只进入自己的假期副本
func NewQuoteService(catalog *lesson.Catalog, horizonDays int, logger *zap.Logger) QuoteService {
	return &quoteService{
		catalog:   catalog,
		generator: lesson.NewGenerator(horizonDays),
		logger:    logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Build 校验 → 合并停课 → 排课 → 周期 → 费用 → 提示
// ═══════════════════════════════════════════════════════════

func (s *quoteService) Build(ctx context.Context, req *dto.QuoteRequest) (*Quote, error) {
	opts := s.catalog.Options

	// 1. 选项校验
	if !opts.HasBranch(req.Branch) {
		return nil, fmt.Errorf("%w: 分校 %q", ErrUnknownOption, req.Branch)
	}
	for _, subj := range req.Subjects {
		if !opts.HasSubject(subj) {
			return nil, fmt.Errorf("%w: 主科 %q", ErrUnknownOption, subj)
		}
	}
	for _, va := range req.ValueAddedCourses {
		if !opts.HasValueAddedCourse(va) {
			return nil, fmt.Errorf("%w: 增值课程 %q", ErrUnknownOption, va)
		}
	}

	start, err := lesson.ParseISODate(req.StartDate)
	if err != nil {
		return nil, err
	}

	// 2. 上课日与时段
	var days []lesson.Weekday
	slots := make(map[lesson.Weekday]string, len(req.Days))
	for _, d := range req.Days {
		wd, err := lesson.ParseWeekday(d.Weekday)
		if err != nil {
			return nil, err
		}
		if _, dup := slots[wd]; dup {
			return nil, fmt.Errorf("%w: %s 重复", lesson.ErrInvalidRequest, wd.Chinese())
		}
		if d.TimeSlot != "" && !opts.HasTimeSlot(d.TimeSlot) {
			return nil, fmt.Errorf("%w: 时段 %q", ErrUnknownOption, d.TimeSlot)
		}
		slots[wd] = d.TimeSlot
		days = append(days, wd)
	}
	daySet := lesson.NewWeekdaySet(days...)

	// 3. 请求级停课日期，不影响共享的假期表
	cancellations := make([]civil.Date, 0, len(req.Cancellations))
	for _, raw := range req.Cancellations {
		d, err := lesson.ParseISODate(raw)
		if err != nil {
			return nil, err
		}
		cancellations = append(cancellations, d)
	}
	holidays := s.catalog.Holidays
	if len(cancellations) > 0 {
		holidays = holidays.Union(cancellations...)
	}

	// 4. 排课
	result, err := s.generator.Generate(lesson.ScheduleRequest{
		StartDate:      start,
		OccurrenceDays: daySet,
		LessonCount:    req.LessonCount,
	}, holidays)
	if err != nil {
		return nil, err
	}

	frequency := daySet.Len()
	q := &Quote{
		StudentName: strings.TrimSpace(req.StudentName),
		Branch:      req.Branch,
		InvoiceNo:   strings.TrimSpace(req.InvoiceNo),
		StartDate:   start,
		Frequency:   frequency,
		LessonCount: req.LessonCount,
		Subjects:    req.Subjects,
		ValueAdded:  req.ValueAddedCourses,
		Lessons:     make([]LessonEntry, 0, len(result.LessonDates)),
		Skipped:     make([]SkippedEntry, 0, len(result.SkippedDates)),
	}
	for i, d := range result.LessonDates {
		wd := lesson.WeekdayOf(d)
		q.Lessons = append(q.Lessons, LessonEntry{Index: i + 1, Date: d, Weekday: wd, TimeSlot: slots[wd]})
	}
	for _, d := range result.SkippedDates {
		q.Skipped = append(q.Skipped, SkippedEntry{Date: d, Weekday: lesson.WeekdayOf(d), Reason: holidays.Name(d)})
	}

	// 5. 收费周期
	weeks := s.catalog.WeekSpans.WeekSpan(req.LessonCount, frequency, result.SkippedDates)
	q.Period, err = lesson.NewBillingPeriod(start, weeks)
	if err != nil {
		return nil, err
	}

	// 6. 费用
	items, itemErrs := lesson.ParseOptionalItems(req.OptionalItems, s.catalog.Fees)
	q.Fees, q.PricingErr = s.catalog.Fees.Breakdown(frequency, req.LessonCount, len(req.ValueAddedCourses) > 0, items)

	// 7. 提示
	if q.PricingErr != nil {
		s.logger.Warn("主科价格未配置",
			zap.Int("frequency", lesson.NormalizeFrequency(frequency)),
			zap.Int("lesson_count", req.LessonCount))
		q.Warnings = append(q.Warnings, dto.Warning{Code: WarnUnconfiguredPricing, Message: q.PricingErr.Error()})
	}
	for _, e := range itemErrs {
		q.Warnings = append(q.Warnings, dto.Warning{Code: WarnMalformedOptional, Message: e.Error()})
	}
	if req.DeclaredFee != nil && *req.DeclaredFee != q.Fees.Total {
		q.Warnings = append(q.Warnings, dto.Warning{
			Code:    WarnDeclaredFeeMismatch,
			Message: fmt.Sprintf("申报金额 $%d 与计算金额 $%d 不符", *req.DeclaredFee, q.Fees.Total),
		})
	}

	s.logger.Debug("报价完成",
		zap.String("branch", q.Branch),
		zap.Int("lessons", len(q.Lessons)),
		zap.Int("skipped", len(q.Skipped)),
		zap.Int64("total", q.Fees.Total),
	)
	return q, nil
}

func (s *quoteService) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	q, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(q), nil
}

// ── 转换 ──

func toQuoteResponse(q *Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		StudentName: q.StudentName,
		Branch:      q.Branch,
		BranchLabel: lesson.BranchLabel(q.Branch),
		InvoiceNo:   q.InvoiceNo,
		Frequency:   q.Frequency,
		LessonCount: q.LessonCount,
		Lessons:     make([]dto.LessonRow, 0, len(q.Lessons)),
		Skipped:     make([]dto.SkippedRow, 0, len(q.Skipped)),
		Period: dto.PeriodResponse{
			StartDate: lesson.FormatDate(q.Period.StartDate),
			EndDate:   lesson.FormatDate(q.Period.EndDate),
			Weeks:     q.Period.Weeks,
			Label:     q.Period.String(),
		},
		Fees: dto.FeeResponse{
			Tuition:        q.Fees.Tuition,
			Materials:      q.Fees.Materials,
			ValueAddedUnit: q.Fees.ValueAddedUnit,
			ValueAdded:     q.Fees.ValueAdded,
			OptionalItems:  make([]dto.OptionalItemRow, 0, len(q.Fees.OptionalItems)),
			OptionalTotal:  q.Fees.OptionalTotal,
			Total:          q.Fees.Total,
		},
		Subjects:   strings.Join(q.Subjects, labelSeparator),
		ValueAdded: strings.Join(q.ValueAdded, labelSeparator),
		Warnings:   q.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []dto.Warning{}
	}

	for _, l := range q.Lessons {
		resp.Lessons = append(resp.Lessons, dto.LessonRow{
			Index:    l.Index,
			Date:     lesson.FormatDate(l.Date),
			ISODate:  l.Date.String(),
			Weekday:  l.Weekday.Chinese(),
			TimeSlot: l.TimeSlot,
		})
	}
	for _, sk := range q.Skipped {
		resp.Skipped = append(resp.Skipped, dto.SkippedRow{
			Date:    lesson.FormatDate(sk.Date),
			ISODate: sk.Date.String(),
			Weekday: sk.Weekday.Chinese(),
			Reason:  sk.Reason,
		})
	}
	for _, item := range q.Fees.OptionalItems {
		resp.Fees.OptionalItems = append(resp.Fees.OptionalItems, dto.OptionalItemRow{
			Label:  item.Label,
			Kind:   string(item.Kind),
			Amount: item.Delta,
		})
	}
	return resp
}
