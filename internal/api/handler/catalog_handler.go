package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/response"
)

// CatalogHandler 表单选项
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Get 表单选项、价目附加项目与假期
// GET /api/v1/catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	response.OK(c, h.catalogSvc.GetCatalog(c.Request.Context()))
}
