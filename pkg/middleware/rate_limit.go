package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restaurants-starter/restaurants-service/pkg/metrics"
	"golang.org/x/time/rate"
)

const (
	bucketIdleTTL  = 10 * time.Minute
	bucketSweepGap = time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// limiterStore holds one token bucket per client key. Buckets idle for longer
// than idleTTL are dropped, at most once per sweepGap.
type limiterStore struct {
	rps      float64
	burst    int
	idleTTL  time.Duration
	sweepGap time.Duration
	now      func() time.Time
	buckets  sync.Map // map[string]*bucket

	mu        sync.Mutex
	lastSweep time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		rps:      rps,
		burst:    burst,
		idleTTL:  bucketIdleTTL,
		sweepGap: bucketSweepGap,
		now:      time.Now,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	now := s.now()
	s.sweep(now)

	v, ok := s.buckets.Load(key)
	if !ok {
		b := &bucket{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		v, _ = s.buckets.LoadOrStore(key, b)
	}
	b := v.(*bucket)
	b.lastSeen.Store(now.UnixNano())
	return b.limiter
}

func (s *limiterStore) sweep(now time.Time) {
	s.mu.Lock()
	if now.Sub(s.lastSweep) < s.sweepGap {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	s.mu.Unlock()

	cutoff := now.Add(-s.idleTTL).UnixNano()
	s.buckets.Range(func(k, v any) bool {
		if v.(*bucket).lastSeen.Load() < cutoff {
			s.buckets.Delete(k)
		}
		return true
	})
}

// RateLimitMiddleware returns a Gin middleware enforcing a per-client token bucket.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Each call returns a limiter with its own buckets.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.get(clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
