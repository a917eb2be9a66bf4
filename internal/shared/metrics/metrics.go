package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventx_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventx_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	chainCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventx_chain_calls_total",
			Help: "Contract calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	chainCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventx_chain_call_duration_seconds",
			Help:    "Contract call latency",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"method"},
	)

	settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventx_settlements_total",
			Help: "Server-signed mints by outcome",
		},
		[]string{"outcome"},
	)

	imageCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventx_image_cache_lookups_total",
			Help: "Event image cache lookups by result",
		},
		[]string{"result"},
	)
)

// ObserveChainCall records one contract call.
func ObserveChainCall(method string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	chainCalls.WithLabelValues(method, outcome).Inc()
	chainCallDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveSettlement records a mint outcome: minted, rejected, failed or reverted.
func ObserveSettlement(outcome string) {
	settlements.WithLabelValues(outcome).Inc()
}

// ObserveImageCache records a hit or miss.
func ObserveImageCache(hit bool) {
	if hit {
		imageCache.WithLabelValues("hit").Inc()
		return
	}
	imageCache.WithLabelValues("miss").Inc()
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
