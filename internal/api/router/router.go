package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/config"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/handler"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/middleware"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/model"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/jwt"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 登录（无需认证，按 IP 限流）
		v1.POST("/auth/login", limit, h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			authorized.GET("/catalog", h.Catalog.Get)
			authorized.POST("/quotes", limit, h.Quote.Create)

			exports := authorized.Group("/exports", limit)
			{
				exports.POST("/document", h.Export.Document)
				exports.POST("/calendar", h.Export.Calendar)
				exports.POST("/text", h.Export.Text)
			}

			authorized.POST("/staff", middleware.RoleAuth(model.RoleAdmin), h.Staff.Create)
		}
	}

	return r
}
