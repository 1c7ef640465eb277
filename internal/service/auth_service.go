package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrStaffNotFound      = errors.New("员工不存在")
)

// TokenRevoker Token 注销黑名单；Redis 未配置时为 nil
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentStaff(ctx context.Context, staffID string) (*dto.StaffResponse, error)
}

type authService struct {
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	revoker TokenRevoker
	logger  *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		jwtMgr:  jwtMgr,
		revoker: revoker,
		logger:  logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询员工
	staff, err := s.repo.Staff.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}

	// 3. 签发 Access Token
	token, _, err := s.jwtMgr.GenerateAccessToken(staff.StaffID, staff.Role, staff.Branch)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("员工登录", zap.String("staff_id", staff.StaffID), zap.String("branch", staff.Branch))

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		Staff:       toStaffResponse(staff),
	}, nil
}

// Logout 将 Token 加入黑名单直至其自然过期；未配置 Redis 时仅记录日志
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.revoker == nil {
		s.logger.Warn("Redis 未配置，Token 无法注销", zap.String("jti", jti))
		return nil
	}
	if err := s.revoker.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentStaff(ctx context.Context, staffID string) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}
	resp := toStaffResponse(staff)
	return &resp, nil
}

func toStaffResponse(s *model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:       s.StaffID,
		Username: s.Username,
		Name:     s.Name,
		Branch:   s.Branch,
		Role:     s.Role,
	}
}
