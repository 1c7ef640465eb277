package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
)

// StaffRepository 员工账号数据访问接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetByUsername(ctx context.Context, username string) (*model.Staff, error)
}

// staffRepo StaffRepository 的 GORM 实现
type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByUsername(ctx context.Context, username string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}
