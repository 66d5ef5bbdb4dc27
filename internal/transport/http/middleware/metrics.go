package middleware

import (
	"strconv"
	"time"

	"github.com/ErlanBelekov/contact-manager/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records latency and count per route template, so /contacts/:id is
// one series regardless of id. Probe routes are skipped.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		switch route {
		case "/healthz", "/readyz":
			return
		case "":
			route = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}
