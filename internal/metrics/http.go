package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// httpMetrics holds HTTP-specific metric instruments.
type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// HTTPMetricsMiddleware returns a Gin middleware recording request totals and
// durations with method, path, and status_code labels. The path label uses
// the matched route pattern, not the raw request path, to keep cardinality
// bounded.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	instruments := &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		attrs := []attribute.KeyValue{
			attribute.String("method", c.Request.Method),
			attribute.String("path", routePattern(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		}

		instruments.requestCounter.Add(c.Request.Context(), 1, metric.WithAttributes(attrs...))
		instruments.durationHisto.Record(c.Request.Context(), duration.Seconds(), metric.WithAttributes(attrs...))
	}
}

// routePattern returns the matched route pattern, or "unknown" when the
// request hit no registered route.
func routePattern(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
