package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-events-api/api/swagger"
	"github.com/noah-isme/campus-events-api/internal/server"
	"github.com/noah-isme/campus-events-api/pkg/cache"
	"github.com/noah-isme/campus-events-api/pkg/config"
	"github.com/noah-isme/campus-events-api/pkg/database"
	"github.com/noah-isme/campus-events-api/pkg/logger"
)

// @title Campus Events API
// @version 1.0.0
// @description Academic records and annual campus event pages.
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	closers := []func() error{db.Close}

	if cfg.Database.AutoMigrate {
		applied, err := database.NewMigrator(db, logr).Up(context.Background())
		if err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("migrations applied", zap.Strings("versions", applied))
	}

	var redisClient redis.UniversalClient
	if cfg.EventCache.Enabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("event cache disabled, redis unavailable", zap.Error(err))
		} else {
			redisClient = client
			closers = append(closers, client.Close)
		}
	}

	app := server.NewApp(cfg, db, redisClient, logr)
	router := server.NewRouter(cfg, app.Handlers, app.Tokens, app.Metrics, logr)

	logr.Info("server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
	if err := server.New(cfg.Port, router, logr, closers...).Run(); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
