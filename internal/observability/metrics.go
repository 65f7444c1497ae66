// ABOUTME: Prometheus instruments for the HTTP surface and completion calls
// ABOUTME: Exposed on /metrics, recorded via gin middleware and the llm client

package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviechat_http_requests_total",
			Help: "HTTP requests handled, by route, method and status code",
		},
		[]string{"path", "method", "status"},
	)

	completionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviechat_completion_request_duration_seconds",
			Help:    "Latency of Azure OpenAI completion calls, by outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

// ObserveCompletion records one completion call. Outcome is "success",
// "network_error" or "bad_response".
func ObserveCompletion(took time.Duration, outcome string) {
	completionDuration.WithLabelValues(outcome).Observe(took.Seconds())
}

// Middleware counts every handled request. Uses the route pattern rather
// than the raw URL so unknown paths don't grow the label set.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
