package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	v1 "github.com/amirmoussa01/pharmaonline-chat/cmd/api/router/v1"
	cacheAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/adapter"
	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/config"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/database"
	queueAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/adapter"
	qport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/realtime"
	httpHandler "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/presentation/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// cache and queue are optional collaborators: without Redis the unread
	// poll hits the store directly and offline notifications are skipped
	var cache cport.Cache
	if redisCache, err := cacheAdapter.NewRedisAdapter(); err != nil {
		logger.Warn("redis unavailable, unread cache disabled", zap.Error(err))
	} else {
		cache = redisCache
		defer redisCache.Close()
	}

	var queue qport.Client
	if asynqClient, err := queueAdapter.NewAsynqClientFromEnv(); err != nil {
		logger.Warn("queue unavailable, offline notifications disabled", zap.Error(err))
	} else {
		queue = asynqClient
		defer asynqClient.Close()
	}

	registry := realtime.NewRegistry()
	defer registry.Close()
	presence := realtime.NewPresenceTracker(registry, logger)

	r := gin.Default()
	r.Use(cors.New(cfg.CorsConfig()))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, httpHandler.Deps{
		Pool:      pool,
		Cache:     cache,
		Queue:     queue,
		Registry:  registry,
		Presence:  presence,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger,
	})

	logger.Info("messaging api listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
