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

// StaffHandler 员工账号管理（仅管理员）
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// Create 新建员工账号
// POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Describe(err))
		return
	}

	result, err := h.staffSvc.Create(c.Request.Context(), service.CreateStaffInput{
		Username: req.Username,
		Name:     req.Name,
		Branch:   req.Branch,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			response.Error(c, http.StatusConflict, 11003, "用户名已存在")
		case errors.Is(err, service.ErrWeakPassword):
			response.ValidationError(c, err.Error())
		default:
			handleQuoteError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success", Data: result})
}
