package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/symmetric-cedric/lesson-schedule-app/config"
	"github.com/symmetric-cedric/lesson-schedule-app/internal/repository"
	"github.com/symmetric-cedric/lesson-schedule-app/pkg/database"
	applogger "github.com/symmetric-cedric/lesson-schedule-app/pkg/logger"
)

// env 子命令共用的配置、日志与数据库
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	repo   *repository.Repository
	close  func()
}

func openEnv() (*env, error) {
	cfg, err := config.Load(os.Getenv("LESSON_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 命令行工具只输出警告以上日志，避免干扰交互
	logCfg := cfg.Log
	logCfg.Format = "console"
	if logCfg.Level != "debug" {
		logCfg.Level = "warn"
	}
	logger, err := applogger.NewLogger(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, logCfg.Level, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		repo:   repository.NewRepository(db),
		close: func() {
			sqlDB.Close()
			_ = logger.Sync()
		},
	}, nil
}
