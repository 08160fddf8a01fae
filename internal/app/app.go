package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-workforce/internal/config"
	"go-workforce/internal/middleware"
	"go-workforce/internal/shared/connection"
)

// App holds the wired HTTP application and its shared resources.
type App struct {
	Engine *gin.Engine
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
	Config *config.Config
	Logger *zap.Logger
}

// BuildApp connects the backing services and mounts every module.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	gin.SetMode(cfg.GinMode)

	gdb, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password,
		cfg.Database.Name, cfg.Database.Port, cfg.Database.SSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		// The API degrades gracefully without the cache.
		logger.Warn("redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID(logger))
	engine.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	a := &App{
		Engine: engine,
		GormDB: gdb,
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Logger: logger,
	}
	if err := registerModules(a); err != nil {
		return nil, err
	}
	return a, nil
}
