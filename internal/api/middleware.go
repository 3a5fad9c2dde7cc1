package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/sentinel/internal/observability"
)

// quietPaths are probe endpoints whose steady polling would drown the
// request log. They still count toward the duration histogram.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// LoggingMiddleware logs each request with slog and records its duration.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		if !quietPaths[path] {
			slog.Info("request",
				"method", c.Request.Method,
				"path", path,
				"status", status,
				"duration", duration.String(),
				"ip", c.ClientIP(),
				"keyed", c.GetHeader("X-API-Key") != "",
			)
		}

		observability.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			fmt.Sprintf("%d", status),
		).Observe(duration.Seconds())
	}
}
