package handler

import "github.com/symmetric-cedric/lesson-schedule-app/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Staff   *StaffHandler
	Catalog *CatalogHandler
	Quote   *QuoteHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Staff:   NewStaffHandler(svc.Staff),
		Catalog: NewCatalogHandler(svc.Catalog),
		Quote:   NewQuoteHandler(svc.Quote),
		Export:  NewExportHandler(svc.Export),
	}
}
