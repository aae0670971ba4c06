package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	cacheAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/adapter"
	cport "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/cache/port"
	"github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/database"
	queueAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/infrastructure/queue/adapter"
	"github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/application/task"
	repoAdapter "github.com/amirmoussa01/pharmaonline-chat/internal/pkg/messaging/persistence/repository/adapter"
)

// The worker consumes the messaging queues: offline notifications and the
// unread-index reconciliation sweep. It shares the store and cache with the
// api process but holds no realtime state.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	var cache cport.Cache
	if redisCache, err := cacheAdapter.NewRedisAdapter(); err != nil {
		logger.Warn("redis unavailable, unread cache warming disabled", zap.Error(err))
	} else {
		cache = redisCache
		defer redisCache.Close()
	}

	srv, err := queueAdapter.NewAsynqServer(logger)
	if err != nil {
		logger.Fatal("failed to build queue server", zap.Error(err))
	}

	repo := repoAdapter.NewPgMessageRepository(pool)
	task.RegisterOfflineNotifyTask(srv, repo, cache, logger)
	task.RegisterUnreadRefreshTask(srv, repo, cache, logger)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("messaging worker started")
	if err := srv.Run(runCtx); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
