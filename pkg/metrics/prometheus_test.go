package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounters(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())

	r.RecordFetch("coingecko", true)
	r.RecordFetch("coingecko", false)
	r.RecordFetch("coingecko", false)
	r.RecordCache("prices", true)
	r.RecordLastPrice("bitcoin", "usd", 50000)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("coingecko", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("coingecko", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheTotal.WithLabelValues("prices", "hit")))
	assert.Equal(t, 50000.0, testutil.ToFloat64(r.lastPrice.WithLabelValues("bitcoin", "usd")))
}
