package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aman-churiwal/libretune/internal/config"
	"github.com/aman-churiwal/libretune/internal/logging"
	"github.com/aman-churiwal/libretune/internal/server"
	"github.com/aman-churiwal/libretune/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load env if it exists
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	dbLogLevel := gormlogger.Info
	if cfg.Server.Environment == "production" {
		dbLogLevel = gormlogger.Warn
	}

	db, err := storage.NewPostgres(cfg.Database.URL, dbLogLevel)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	redis, err := storage.NewRedis(cfg.Redis.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	logger.Info("connected to storage",
		zap.String("redis", cfg.Redis.GetRedisAddr()),
	)

	srv := server.New(cfg, logger, db, redis)

	go func() {
		if err := srv.Run(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
