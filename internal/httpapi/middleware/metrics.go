package middleware

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics holds simple request counters for the /metrics endpoint.
// Lightweight alternative to a full metrics backend for basic monitoring.
type Metrics struct {
	totalRequests atomic.Uint64
	totalLatency  atomic.Uint64 // sum of request durations in milliseconds
	totalErrors   atomic.Uint64
}

var defaultMetrics = &Metrics{}

// MetricsMiddleware records request count, latency, and error count.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Milliseconds()
		defaultMetrics.totalRequests.Add(1)
		defaultMetrics.totalLatency.Add(uint64(duration))
		if c.Writer.Status() >= 400 {
			defaultMetrics.totalErrors.Add(1)
		}
	}
}

// GetMetrics returns a snapshot of current request metrics.
func GetMetrics() map[string]any {
	requests := defaultMetrics.totalRequests.Load()
	latencySum := defaultMetrics.totalLatency.Load()
	avgMs := float64(0)
	if requests > 0 {
		avgMs = float64(latencySum) / float64(requests)
	}
	return map[string]any{
		"total_requests": requests,
		"total_errors":   defaultMetrics.totalErrors.Load(),
		"avg_latency_ms": avgMs,
	}
}
