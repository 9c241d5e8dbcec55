// Package metrics provides Prometheus instrumentation for the jainvest API.
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
	// TradesTotal counts executed paper trades, partitioned by side.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_trades_total",
		Help: "Total number of paper trades executed",
	}, []string{"side"})

	// TradeRejections counts trades refused by the ledger.
	TradeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_trade_rejections_total",
		Help: "Paper trades rejected by the ledger",
	}, []string{"reason"})

	// BacktestsTotal counts backtest runs by outcome.
	BacktestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_backtests_total",
		Help: "Backtest simulations run",
	}, []string{"outcome"})

	// QuizAttemptsTotal counts scored quiz submissions.
	QuizAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_quiz_attempts_total",
		Help: "Quiz attempts scored",
	}, []string{"quiz_id"})

	// AnalysisRequestsTotal counts AI analyses by source (model or mock).
	AnalysisRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_analysis_requests_total",
		Help: "Document analyses served",
	}, []string{"source"})

	// PriceRefreshes counts scheduled mark-to-market sweeps.
	PriceRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_price_refreshes_total",
		Help: "Scheduled portfolio price refreshes",
	}, []string{"outcome"})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jainvest_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jainvest_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Use the route pattern for path label to avoid high cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
