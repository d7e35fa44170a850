package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goal-detector/internal/shared/metrics"
	"goal-detector/internal/shared/telemetry"
)

// Logging emits a structured log per request and counts it in m, which may be nil.
func Logging(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(route, status)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if id := RoadmapIDFromContext(c); id != "" {
			fields["roadmap_id"] = id
		}
		telemetry.Info("request.complete", fields)
	}
}
