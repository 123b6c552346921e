package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	fetchTotal   *prometheus.CounterVec
	cacheTotal   *prometheus.CounterVec
	alertsSent   *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
	anomalyRatio *prometheus.GaugeVec
}

// New creates a Prometheus recorder registered with the default registerer.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudlab_market_fetch_total",
				Help: "Upstream market data fetches by source and result",
			},
			[]string{"source", "result"},
		),
		cacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudlab_cache_requests_total",
				Help: "Market data cache lookups by endpoint and result",
			},
			[]string{"endpoint", "result"},
		),
		alertsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudlab_alerts_sent_total",
				Help: "SOC alerts delivered to a backend",
			},
			[]string{"backend", "geo"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudlab_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudlab_last_price",
				Help: "Last fetched spot price",
			},
			[]string{"asset", "currency"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloudlab_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		anomalyRatio: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cloudlab_anomaly_ratio",
				Help: "Share of rows flagged by the last detector run",
			},
			[]string{"lab"},
		),
	}
	reg.MustRegister(r.fetchTotal, r.cacheTotal, r.alertsSent, r.errorsTotal, r.lastPrice, r.latency, r.anomalyRatio)
	return r
}

// RecordFetch records one upstream call; ok=false counts as an error result.
func (r *Recorder) RecordFetch(source string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.fetchTotal.WithLabelValues(source, result).Inc()
}

// RecordCache records a cache hit or miss for endpoint.
func (r *Recorder) RecordCache(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(endpoint, result).Inc()
}

// RecordAlertSent records an alert delivered to a backend.
func (r *Recorder) RecordAlertSent(backend, geo string) {
	r.alertsSent.WithLabelValues(backend, geo).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last spot price for an asset.
func (r *Recorder) RecordLastPrice(asset, currency string, price float64) {
	r.lastPrice.WithLabelValues(asset, currency).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAnomalyRatio records flagged/total for the last run of lab.
func (r *Recorder) RecordAnomalyRatio(lab string, ratio float64) {
	r.anomalyRatio.WithLabelValues(lab).Set(ratio)
}
