// Package observability holds the Prometheus collectors for remote calls.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeRemote  = "remote_error"
	OutcomeFailure = "transport_error"
)

var (
	remoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pixtrack",
		Subsystem: "pixela",
		Name:      "requests_total",
		Help:      "Requests sent to the Pixela API, by operation and outcome.",
	}, []string{"operation", "outcome"})
	remoteLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pixtrack",
		Subsystem: "pixela",
		Name:      "request_duration_seconds",
		Help:      "Latency of Pixela API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	staleBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pixtrack",
		Subsystem: "sync",
		Name:      "stale_refresh_batches_total",
		Help:      "Refresh batches discarded because the selected date moved on.",
	})
)

func init() {
	prometheus.MustRegister(remoteRequests, remoteLatency, staleBatches)
}

// RecordRequest counts one remote call and observes its latency.
func RecordRequest(operation, outcome string, started time.Time) {
	remoteRequests.WithLabelValues(operation, outcome).Inc()
	remoteLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordStaleBatch counts a discarded refresh batch.
func RecordStaleBatch() {
	staleBatches.Inc()
}
