// Package metrics exposes Prometheus instrumentation for batch evaluation.
//
// Metrics:
//   - catalog_actions_total: actions evaluated (counter)
//     Labels: operation, outcome
//   - catalog_batch_duration_seconds: wall time of one batch (histogram)
//   - catalog_batch_actions: actions per batch (histogram)
//   - catalog_http_requests_total: served requests (counter)
//     Labels: route, status
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_actions_total",
			Help: "Total number of evaluated actions",
		},
		[]string{"operation", "outcome"},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_batch_duration_seconds",
			Help:    "Time spent evaluating one batch",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	BatchActions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_batch_actions",
			Help:    "Number of actions per evaluated batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of served HTTP requests",
		},
		[]string{"route", "status"},
	)
)

// ObserveAction counts one evaluated action.
func ObserveAction(operation, outcome string) {
	ActionsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveBatch records the size and duration of a finished batch.
func ObserveBatch(actions int, elapsed time.Duration) {
	BatchActions.Observe(float64(actions))
	BatchDuration.Observe(elapsed.Seconds())
}

// ObserveRequest counts one served HTTP request under its route pattern.
func ObserveRequest(route string, status int) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
