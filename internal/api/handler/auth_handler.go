package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/validate"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 员工登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Describe(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 注销当前 Token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := MustGetTokenInfo(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me 当前员工信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	staffID, ok := MustGetStaffID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentStaff(c.Request.Context(), staffID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 11002, "账号已停用")
	case errors.Is(err, service.ErrStaffNotFound):
		response.Unauthorized(c, 10002, "员工不存在")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
