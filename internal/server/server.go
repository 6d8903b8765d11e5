package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/restaurants-starter/restaurants-service/handlers"
	"github.com/restaurants-starter/restaurants-service/internal/config"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/handler"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/service"
	"github.com/restaurants-starter/restaurants-service/pkg/logger"
	"github.com/restaurants-starter/restaurants-service/pkg/middleware"
)

// Pinger reports whether a dependency answers.
type Pinger func(ctx context.Context) error

// Options carries everything the router needs. Redis and StorePing may be nil.
// RedisConfigured is true when REDIS_HOST is set, even if the client could
// not be created.
type Options struct {
	Service         service.Service
	Backend         string // "mongo" or "memory", reported by /ready
	StorePing       Pinger
	Redis           *redis.Client
	RedisConfigured bool
	RateLimit       config.RateLimitConfig
	Gatherer        prometheus.Gatherer // nil uses the default registry
}

const pingTimeout = 2 * time.Second

// NewRouter builds the gin engine: global middleware, service endpoints and
// the restaurant routes. The rate limiter only guards the restaurant routes,
// so health, readiness and metrics keep answering while Redis is down.
func NewRouter(opts Options) *gin.Engine {
	startTime := time.Now()
	if opts.Backend == "" {
		opts.Backend = "store"
	}
	r := gin.New()
	r.Use(middleware.CORS(), gin.Logger(), gin.Recovery(), middleware.Metrics())

	var limit []gin.HandlerFunc
	if opts.RateLimit.Enabled {
		if opts.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(opts.RateLimit.WindowSeconds) * time.Second
			limit = append(limit, middleware.RedisRateLimitMiddleware(opts.Redis, opts.RateLimit.RPS, opts.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis (rps=%v burst=%d window=%s)", opts.RateLimit.RPS, opts.RateLimit.Burst, win)
		} else {
			limit = append(limit, middleware.RateLimitMiddleware(opts.RateLimit.RPS, opts.RateLimit.Burst))
			logger.Infof("rate limiter: memory (rps=%v burst=%d)", opts.RateLimit.RPS, opts.RateLimit.Burst)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the store and, if the limiter needs it, Redis answer
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		ready := true
		deps := map[string]bool{}

		deps[opts.Backend] = opts.Service != nil
		if opts.StorePing != nil && deps[opts.Backend] {
			if err := opts.StorePing(ctx); err != nil {
				logger.Warnf("readiness: %s ping failed: %v", opts.Backend, err)
				deps[opts.Backend] = false
			}
		}
		if !deps[opts.Backend] {
			ready = false
		}

		// Redis only matters when it is configured and backs the limiter
		if opts.RedisConfigured && opts.RateLimit.Enabled && opts.RateLimit.UseRedis {
			deps["redis"] = opts.Redis != nil && opts.Redis.Ping(ctx).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		}

		uptime := time.Since(startTime).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	handlers.RegisterSwagger(r)

	if opts.Service != nil {
		handler.RegisterRoutes(r, opts.Service, limit...)
	}
	return r
}
