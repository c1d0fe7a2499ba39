package observability

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline counters. The parser mode counter is what makes a degraded parse
// (model violated the requested format) visible without failing the request.
var (
	TaskRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "allin_task_requests_total",
		Help: "Task batch requests by outcome (hit, generated, failed).",
	}, []string{"outcome"})

	TaskParseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "allin_task_parse_total",
		Help: "Completion responses parsed by mode (strict, repaired, fallback).",
	}, []string{"mode"})

	CompletionUpstreamErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "allin_completion_upstream_errors_total",
		Help: "Chat completion calls that failed with a transport or non-2xx error.",
	})

	TaskBatchConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "allin_task_batch_conflicts_total",
		Help: "Generated batches discarded because a concurrent writer won the (user, date) key.",
	})
)

// MetricsHandler exposes the default prometheus registry on a gin route.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
