package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// 内容生成结果：generated / repaired / fallback / short_circuit / transport_error
	GenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spm_generation_total",
			Help: "Content generation outcomes by mode",
		},
		[]string{"mode", "outcome"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spm_generation_duration_seconds",
			Help:    "End-to-end content generation latency",
			Buckets: []float64{0.05, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"mode"},
	)

	LLMRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spm_llm_requests_total",
			Help: "Provider calls by model, purpose and result",
		},
		[]string{"model", "purpose", "status"},
	)

	LLMTokenCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spm_llm_tokens_total",
			Help: "Tokens consumed by direction",
		},
		[]string{"model", "direction"},
	)

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			GenerationCounter,
			GenerationDuration,
			LLMRequestCounter,
			LLMTokenCounter,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

// ObserveGeneration 记录一次内容生成
func ObserveGeneration(mode, outcome string, elapsed time.Duration) {
	GenerationCounter.WithLabelValues(mode, outcome).Inc()
	GenerationDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
