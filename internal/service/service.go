package service

import (
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/config"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/lesson"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Staff   StaffService
	Catalog CatalogService
	Quote   QuoteService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	catalog *lesson.Catalog,
	jwtMgr *jwt.Manager,
	revoker TokenRevoker,
	logger *zap.Logger,
) *Service {
	quote := NewQuoteService(catalog, cfg.Schedule.MaxHorizonDays, logger)
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, revoker, logger),
		Staff:   NewStaffService(repo, catalog.Options, logger),
		Catalog: NewCatalogService(catalog),
		Quote:   quote,
		Export:  NewExportService(quote, cfg.Schedule.Timezone, logger),
	}
}
