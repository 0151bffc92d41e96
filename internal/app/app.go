package app

import (
	"net/http"

	"go-hrpay/internal/bootstrap"
	"go-hrpay/internal/config"
	"go-hrpay/internal/database"
	"go-hrpay/internal/middleware"
	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/shared/storage"
	"go-hrpay/internal/shared/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned AuditLogger writes server lifecycle events to the activity log.
func BuildApp(router *gin.Engine, cfg config.Config) (bootstrap.AuditLogger, error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(sqlDB); err != nil {
			return nil, err
		}
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		return nil, err
	}
	logger.Info("redis connection established")

	tokens := token.NewManager(cfg.JWTSecret)

	router.Use(middleware.RequestID())
	router.Use(middleware.AuthGuard(tokens))
	router.Use(middleware.ContextLogger(zap.L()))
	router.Static(storage.PublicPrefix, cfg.UploadDir)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 2. Register Modules & Routes
	recorder, err := registerModules(router, cfg, sqlDB, gormDB, redisClient, tokens)
	if err != nil {
		return nil, err
	}

	return bootstrap.NewActivityAuditLogger(recorder, bootstrap.NewLogAuditLogger()), nil
}
