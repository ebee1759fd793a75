package server

import (
	"strconv"
	"time"

	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// _namespace is the namespace of all exported metrics.
const _namespace = "importer"

// metrics holds the server metrics.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	captured prometheus.Histogram
}

// newMetrics registers the server metrics. The capture router state is
// read on every scrape.
func newMetrics(reg prometheus.Registerer, router *capture.Router) *metrics {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: _namespace,
		Subsystem: "capture",
		Name:      "attached_sinks",
		Help:      "Number of capture sinks currently attached to the log router.",
	}, func() float64 {
		return float64(router.Len())
	})

	factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: _namespace,
		Subsystem: "capture",
		Name:      "delivery_failures_total",
		Help:      "Number of log events a listener failed to accept.",
	}, func() float64 {
		return float64(router.Failures())
	})

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of served requests.",
		}, []string{"endpoint", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		captured: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: _namespace,
			Subsystem: "capture",
			Name:      "lines",
			Help:      "Number of captured lines returned per request.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// observeRequest records a served request.
func (m *metrics) observeRequest(endpoint string, status int, d time.Duration) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(d.Seconds())
}
