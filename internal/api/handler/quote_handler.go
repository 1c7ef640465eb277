package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/validate"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

// QuoteHandler 报价模块 HTTP 处理器
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

// NewQuoteHandler 创建 QuoteHandler
func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// Create 计算排课与费用
// POST /api/v1/quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	req, ok := bindQuoteRequest(c)
	if !ok {
		return
	}

	result, err := h.quoteSvc.Quote(c.Request.Context(), req)
	if err != nil {
		handleQuoteError(c, err)
		return
	}

	response.OK(c, result)
}

func bindQuoteRequest(c *gin.Context) (*dto.QuoteRequest, bool) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validate.Describe(err))
		return nil, false
	}
	return &req, true
}

// handleQuoteError 报价与导出共用的错误码映射
func handleQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lesson.ErrInvalidRequest):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20001, "报价请求无效", err.Error())
	case errors.Is(err, lesson.ErrScheduleUnsatisfiable):
		response.UnprocessableEntity(c, 20002, "可排期范围内无法排满课堂", err.Error())
	case errors.Is(err, service.ErrUnknownOption):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20003, "选项不存在", err.Error())
	case errors.Is(err, service.ErrExportUnpriced):
		response.UnprocessableEntity(c, 20101, "主科价格未配置，不能导出", err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, 20102, "生成导出文件失败")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
