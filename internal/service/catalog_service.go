package service

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/config"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
	pkgerrors "github.com/symmetric-cedric/lesson-schedule-app/pkg/errors"
)

// ── 静态配置加载 ──

// LoadCatalog 启动时构造只读的 lesson.Catalog
//   - builtin: 使用内置 2025 年数据
//   - database: 从价目 / 假期表读取一次；表为空时返回 ErrCatalogEmpty
func LoadCatalog(ctx context.Context, cfg *config.CatalogConfig, repo repository.CatalogRepository, logger *zap.Logger) (*lesson.Catalog, error) {
	if cfg.Source == config.CatalogSourceBuiltin || repo == nil {
		logger.Info("使用内置价目与假期配置")
		return lesson.DefaultCatalog()
	}

	holidayRows, err := repo.ListHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取公众假期失败: %w", err)
	}
	priceRows, err := repo.ListCoursePrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取主科价目失败: %w", err)
	}
	spanRows, err := repo.ListWeekSpans(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取收费周数失败: %w", err)
	}
	rateRows, err := repo.ListValueAddedRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取增值课程单价失败: %w", err)
	}
	optionalRows, err := repo.ListActiveOptionalItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取附加项目失败: %w", err)
	}

	if len(holidayRows) == 0 || len(priceRows) == 0 || len(spanRows) == 0 {
		return nil, pkgerrors.ErrCatalogEmpty
	}

	holidays := make([]lesson.Holiday, 0, len(holidayRows))
	for _, h := range holidayRows {
		holidays = append(holidays, lesson.Holiday{Date: civil.DateOf(h.HolidayDate), Name: h.Name})
	}

	prices := make(map[lesson.PriceKey]lesson.CoursePrice, len(priceRows))
	for _, p := range priceRows {
		prices[lesson.PriceKey{Frequency: p.Frequency, LessonCount: p.LessonCount}] = lesson.CoursePrice{
			Tuition:   p.Tuition,
			Materials: p.Materials,
		}
	}

	spans := make(map[lesson.SpanKey]int, len(spanRows))
	var direct []int
	for _, s := range spanRows {
		if s.Frequency == lesson.AnyFrequency {
			// frequency = 0 的行：周数直接等于堂数
			if s.Weeks != s.LessonCount {
				logger.Warn("特例周数与堂数不一致，按堂数计算",
					zap.Int("lesson_count", s.LessonCount), zap.Int("weeks", s.Weeks))
			}
			direct = append(direct, s.LessonCount)
			continue
		}
		spans[lesson.SpanKey{Frequency: s.Frequency, LessonCount: s.LessonCount}] = s.Weeks
	}

	rates := make(map[int]int64, len(rateRows))
	for _, r := range rateRows {
		rates[r.LessonCount] = r.UnitFee
	}

	optional := make(map[string]int64, len(optionalRows))
	for _, o := range optionalRows {
		optional[o.Label] = o.Delta
	}

	logger.Info("价目与假期配置加载完成",
		zap.Int("holidays", len(holidays)),
		zap.Int("course_prices", len(prices)),
		zap.Int("week_spans", len(spans)),
		zap.Ints("direct_counts", direct),
		zap.Int("optional_items", len(optional)),
	)

	return &lesson.Catalog{
		Holidays:  lesson.NewHolidaySet(holidays...),
		Fees:      lesson.NewFeeTable(prices, rates, optional),
		WeekSpans: lesson.NewWeekSpanTable(spans, direct...),
		Options:   lesson.DefaultFormOptions(),
	}, nil
}

// ── 表单选项 ──

// CatalogService 表单选项查询接口
type CatalogService interface {
	GetCatalog(ctx context.Context) *dto.CatalogResponse
}

type catalogService struct {
	resp *dto.CatalogResponse
}

// NewCatalogService 创建 CatalogService；Catalog 只读，响应在构造时生成一次
func NewCatalogService(catalog *lesson.Catalog) CatalogService {
	return &catalogService{resp: buildCatalogResponse(catalog)}
}

func (s *catalogService) GetCatalog(_ context.Context) *dto.CatalogResponse {
	return s.resp
}

func buildCatalogResponse(catalog *lesson.Catalog) *dto.CatalogResponse {
	opts := catalog.Options

	weekdays := make([]dto.WeekdayOption, 0, 7)
	for d := lesson.Monday; d <= lesson.Sunday; d++ {
		weekdays = append(weekdays, dto.WeekdayOption{Value: d.String(), Label: d.Chinese()})
	}

	labels := catalog.Fees.OptionalLabels()
	optional := make([]dto.OptionalItemOption, 0, len(labels))
	for _, label := range labels {
		amount, _ := catalog.Fees.LookupOptional(label)
		optional = append(optional, dto.OptionalItemOption{Label: label, Amount: amount})
	}

	list := catalog.Holidays.List()
	holidays := make([]dto.HolidayItem, 0, len(list))
	for _, h := range list {
		holidays = append(holidays, dto.HolidayItem{
			Date:    h.Date.String(),
			Label:   lesson.FormatDate(h.Date),
			Name:    h.Name,
			Weekday: lesson.WeekdayOf(h.Date).Chinese(),
		})
	}

	return &dto.CatalogResponse{
		School:            lesson.SchoolName,
		Branches:          append([]string(nil), opts.Branches...),
		LessonCounts:      append([]int(nil), opts.LessonCounts...),
		Weekdays:          weekdays,
		TimeSlots:         append([]string(nil), opts.TimeSlots...),
		Subjects:          append([]string(nil), opts.Subjects...),
		ValueAddedCourses: append([]string(nil), opts.ValueAddedCourses...),
		OptionalItems:     optional,
		Holidays:          holidays,
	}
}
