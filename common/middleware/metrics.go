package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTP metric names.
const (
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPErrors   = "HTTPErrors"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"
)

// MetricsRecorder is the part of the CloudWatch metrics client the middleware needs.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
	IsEnabled() bool
}

// Metrics tracks request count, latency and error classes per route.
func Metrics(recorder MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if recorder == nil || !recorder.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		// Recorded off the request path so a slow CloudWatch never delays the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = recorder.RecordCount(ctx, MetricHTTPRequests, dimensions)
			_ = recorder.RecordLatency(ctx, MetricHTTPLatency, duration, dimensions)

			switch {
			case statusCode >= 500:
				_ = recorder.RecordCount(ctx, MetricHTTPErrors, dimensions)
				_ = recorder.RecordCount(ctx, MetricHTTP5xx, dimensions)
			case statusCode >= 400:
				_ = recorder.RecordCount(ctx, MetricHTTPErrors, dimensions)
				_ = recorder.RecordCount(ctx, MetricHTTP4xx, dimensions)
			}
		}()
	}
}

func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
