package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
)

// CatalogRepository 价目表 / 假期表只读访问接口
// 服务启动时读取一次，之后由内存中的 lesson.Catalog 提供服务；写入仅供 staffctl 使用
type CatalogRepository interface {
	ListHolidays(ctx context.Context) ([]model.PublicHoliday, error)
	ListCoursePrices(ctx context.Context) ([]model.CoursePrice, error)
	ListWeekSpans(ctx context.Context) ([]model.WeekSpan, error)
	ListValueAddedRates(ctx context.Context) ([]model.ValueAddedRate, error)
	ListActiveOptionalItems(ctx context.Context) ([]model.OptionalItemPrice, error)
	UpsertHolidays(ctx context.Context, holidays []model.PublicHoliday) error
}

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo 创建 CatalogRepository 实例
func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListHolidays(ctx context.Context) ([]model.PublicHoliday, error) {
	var rows []model.PublicHoliday
	err := r.db.WithContext(ctx).Order("holiday_date").Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) ListCoursePrices(ctx context.Context) ([]model.CoursePrice, error) {
	var rows []model.CoursePrice
	err := r.db.WithContext(ctx).Order("frequency, lesson_count").Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) ListWeekSpans(ctx context.Context) ([]model.WeekSpan, error) {
	var rows []model.WeekSpan
	err := r.db.WithContext(ctx).Order("frequency, lesson_count").Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) ListValueAddedRates(ctx context.Context) ([]model.ValueAddedRate, error) {
	var rows []model.ValueAddedRate
	err := r.db.WithContext(ctx).Order("lesson_count").Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) ListActiveOptionalItems(ctx context.Context) ([]model.OptionalItemPrice, error) {
	var rows []model.OptionalItemPrice
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("label").
		Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) UpsertHolidays(ctx context.Context, holidays []model.PublicHoliday) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holiday_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&holidays).Error
}
