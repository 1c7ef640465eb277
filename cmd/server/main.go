package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/config"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/handler"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/router"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/api/validate"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/service"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/database"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/jwt"
	applogger "github.com/symmetric-cedric/lesson-schedule-app/pkg/logger"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("LESSON_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	// 3. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：失败时降级运行，不做黑名单与限流）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 不可用，Token 黑名单与限流将被跳过", zap.Error(err))
		rdb = nil
	}
	var revoker service.TokenRevoker
	if rdb != nil {
		revoker = rdb
	}

	// 5. 加载价目表与假期（只读，整个进程共享）
	repo := repository.NewRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalog, err := service.LoadCatalog(ctx, &cfg.Catalog, repo.Catalog, logger)
	cancel()
	if err != nil {
		logger.Fatal("加载价目表失败", zap.Error(err))
	}

	// 6. 依赖注入: Repository → Service → Handler
	if err := validate.RegisterGin(); err != nil {
		logger.Fatal("注册参数校验器失败", zap.Error(err))
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, catalog, jwtMgr, revoker, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}
