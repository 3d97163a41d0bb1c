package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ppiankov/foundyear/internal/model"
)

// Metrics collects batch counters for export in the Prometheus text format
type Metrics struct {
	registry       *prometheus.Registry
	records        *prometheus.CounterVec
	requests       *prometheus.CounterVec
	lookupDuration prometheus.Histogram
}

// New creates a Metrics with its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foundyear_records_total",
			Help: "Records emitted by lookup outcome and confidence tier",
		}, []string{"outcome", "confidence"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foundyear_http_requests_total",
			Help: "Lookup HTTP requests by kind, status code and cache use",
		}, []string{"kind", "status", "cached"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foundyear_lookup_duration_seconds",
			Help:    "Time spent resolving one company, lookup and estimation included",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	m.registry.MustRegister(m.records, m.requests, m.lookupDuration)
	return m
}

// ObserveRecord counts one emitted record and how long it took
func (m *Metrics) ObserveRecord(rec model.Record, elapsed time.Duration) {
	m.records.WithLabelValues(string(rec.Outcome), strconv.Itoa(int(rec.Result.Confidence))).Inc()
	m.lookupDuration.Observe(elapsed.Seconds())
}

// ObserveRequest counts one lookup request. It satisfies lookup.RequestObserver.
func (m *Metrics) ObserveRequest(kind string, status int, cached bool) {
	m.requests.WithLabelValues(kind, strconv.Itoa(status), strconv.FormatBool(cached)).Inc()
}

// WriteTextfile writes all metrics to path for the node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
