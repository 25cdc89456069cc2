package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lmhoang/survey-api/cache"
	"github.com/lmhoang/survey-api/config"
	"github.com/lmhoang/survey-api/controllers"
	"github.com/lmhoang/survey-api/logger"
	"github.com/lmhoang/survey-api/repositories"
	"github.com/lmhoang/survey-api/routes"
	"github.com/lmhoang/survey-api/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	zlog.Info("connected to PostgreSQL and migrated")

	var store cache.Cache
	if cfg.RedisAddr != "" {
		client, err := config.ConnectRedis(cfg)
		if err != nil {
			zlog.Fatal("redis connection failed", zap.Error(err))
		}
		store = cache.NewRedis(client)
		zlog.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	} else {
		store = cache.NewMemory()
		zlog.Warn("REDIS_ADDR not set, using in-process cache")
	}

	uow := repositories.NewUnitOfWork(db)
	surveySvc := services.NewSurveyService(uow)
	responseSvc := services.NewCachedResponseService(services.NewResponseService(uow), store, zlog)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		zlog.Fatal("failed to configure trusted proxies", zap.Error(err))
	}

	routes.Setup(r, routes.Handlers{
		Surveys:   controllers.NewSurveyHandler(surveySvc, zlog),
		Responses: controllers.NewResponseHandler(responseSvc, zlog),
		Auth:      controllers.NewAuthHandler(cfg, zlog),
		Health:    controllers.NewHealthHandler(db),
	})

	zlog.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
