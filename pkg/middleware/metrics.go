package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restaurants-starter/restaurants-service/pkg/metrics"
)

// Metrics records request counts and latency per matched route. Unmatched
// requests are grouped under "unmatched" to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
