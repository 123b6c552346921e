package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()
	APIErrors.WithLabelValues("cost", "invalid").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(APIErrors.WithLabelValues("cost", "invalid")))

	Degraded.WithLabelValues("candles").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(Degraded.WithLabelValues("candles")))

	ObserveSince("cost", time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(APILatency))
}
