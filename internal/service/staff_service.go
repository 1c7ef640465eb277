package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("用户名已存在")
	ErrWeakPassword  = errors.New("密码长度须为 8-72 个字符")
)

// CreateStaffInput 新建员工账号参数（staffctl 使用）
type CreateStaffInput struct {
	Username string
	Name     string
	Branch   string
	Password string
	Admin    bool
}

// StaffService 员工账号管理
type StaffService interface {
	Create(ctx context.Context, in CreateStaffInput) (*dto.StaffResponse, error)
}

type staffService struct {
	repo     *repository.Repository
	branches lesson.FormOptions
	logger   *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, options lesson.FormOptions, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, branches: options, logger: logger}
}

func (s *staffService) Create(ctx context.Context, in CreateStaffInput) (*dto.StaffResponse, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	if username == "" || name == "" {
		return nil, fmt.Errorf("%w: 用户名与姓名不能为空", lesson.ErrInvalidRequest)
	}
	if !s.branches.HasBranch(in.Branch) {
		return nil, fmt.Errorf("%w: 分校 %q", ErrUnknownOption, in.Branch)
	}
	if n := len(in.Password); n < 8 || n > 72 {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.Staff.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.RoleStaff
	if in.Admin {
		role = model.RoleAdmin
	}
	staff := &model.Staff{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Branch:       in.Branch,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建员工", zap.String("staff_id", staff.StaffID), zap.String("username", username), zap.String("role", role))
	resp := toStaffResponse(staff)
	return &resp, nil
}
