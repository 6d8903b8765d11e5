package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/restaurants-starter/restaurants-service/internal/config"
	"github.com/restaurants-starter/restaurants-service/internal/database"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/repository"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/service"
	"github.com/restaurants-starter/restaurants-service/internal/server"
	"github.com/restaurants-starter/restaurants-service/pkg/logger"
	"github.com/restaurants-starter/restaurants-service/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%v redis=%v rate_limit=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{RateLimit: cfg.RateLimit}

	// Prefer the Mongo-backed service; fall back to memory when MongoDB is
	// not configured or unreachable.
	var client *mongo.Client
	if cfg.MongoDB.URI != "" {
		client, err = database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
		if err != nil {
			logger.Warnf("cannot connect to MongoDB (%v); using memory-backed repository", err)
		}
	}
	if client != nil {
		defer func() { _ = client.Disconnect(context.Background()) }()
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		repo := repository.NewMongoRepo(col)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warnf("%v", err)
		}
		opts.Service = service.New(repo)
		opts.Backend = "mongo"
		opts.StorePing = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		logger.Infof("using MongoDB collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	} else {
		opts.Service = service.NewMemoryService()
		opts.Backend = "memory"
	}

	if addr := cfg.Redis.Addr(); addr != "" {
		opts.RedisConfigured = true
		rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rc.Close() }()
		if err := rc.Ping(ctx).Err(); err != nil {
			// the rate limiter falls back to memory without a client
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
			opts.Redis = rc
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := server.NewRouter(opts)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("restaurants service listening on %s (store=%s)", srv.Addr, opts.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Infof("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
		}
	}
	logger.Infof("restaurants service stopped")
}
