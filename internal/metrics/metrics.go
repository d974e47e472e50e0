// Package metrics exposes Prometheus instrumentation for the pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phdscout_fetches_total",
			Help: "Total number of page fetches executed",
		},
		[]string{"host", "status"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "phdscout_fetch_duration_seconds",
			Help:    "Duration of page fetches in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"host"},
	)

	FetchBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phdscout_fetch_bytes_total",
			Help: "Total bytes downloaded across all fetches",
		},
		[]string{"host"},
	)

	ModelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phdscout_model_calls_total",
			Help: "Model completion calls by prompt kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RecordsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "phdscout_records_accepted_total",
			Help: "Structured project records accepted into the result set",
		},
	)

	LinksSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phdscout_links_skipped_total",
			Help: "Project links skipped, by reason",
		},
		[]string{"reason"},
	)
)

// RecordFetch updates the fetch metrics for one request against host.
// A zero statusCode means the request never produced a response.
func RecordFetch(host string, statusCode int, bytes int, duration time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	FetchesTotal.WithLabelValues(host, status).Inc()
	if statusCode > 0 {
		FetchDuration.WithLabelValues(host).Observe(duration.Seconds())
	}
	if bytes > 0 {
		FetchBytesTotal.WithLabelValues(host).Add(float64(bytes))
	}
}

// RecordModelCall updates the model-call counter for one completion request.
func RecordModelCall(kind, outcome string) {
	ModelCallsTotal.WithLabelValues(kind, outcome).Inc()
}

// Handler returns an HTTP handler serving the default Prometheus registry,
// for callers that embed the pipeline in a long-lived process.
func Handler() http.Handler {
	return promhttp.Handler()
}
