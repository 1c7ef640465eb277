package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/dto"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Document 导出收费单
// POST /api/v1/exports/document
func (h *ExportHandler) Document(c *gin.Context) {
	req, ok := bindQuoteRequest(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.Document(c.Request.Context(), req)
	if err != nil {
		handleQuoteError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeXLSX, buf.Bytes())
}

// Calendar 导出课堂日历
// POST /api/v1/exports/calendar
func (h *ExportHandler) Calendar(c *gin.Context) {
	req, ok := bindQuoteRequest(c)
	if !ok {
		return
	}

	body, filename, err := h.exportSvc.Calendar(c.Request.Context(), req)
	if err != nil {
		handleQuoteError(c, err)
		return
	}

	response.Attachment(c, filename, contentTypeICS, body)
}

// Text 导出纯文本
// POST /api/v1/exports/text
func (h *ExportHandler) Text(c *gin.Context) {
	req, ok := bindQuoteRequest(c)
	if !ok {
		return
	}

	text, err := h.exportSvc.Text(c.Request.Context(), req)
	if err != nil {
		handleQuoteError(c, err)
		return
	}

	response.OK(c, dto.TextExportResponse{Text: text})
}
