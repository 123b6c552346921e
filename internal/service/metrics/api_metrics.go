package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cloudlab",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudlab",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by API endpoint and kind",
		},
		[]string{"endpoint", "kind"},
	)

	Degraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudlab",
			Subsystem: "api",
			Name:      "degraded_total",
			Help:      "Responses served with unavailable upstream data or synthetic fallback",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, Degraded)
	})
}

// ObserveSince records the latency of endpoint.
func ObserveSince(endpoint string, start time.Time) {
	APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
