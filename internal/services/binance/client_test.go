package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klines = `[
 [1700000000000,"35000.10","35100.00","34900.00","35050.50","12.5",1700000059999,"438000.0",120,"6.1","213000.0","0"],
 [1700000060000,"35050.50","35200.00","35000.00","35150.00","8.25",1700000119999,"290000.0",95,"4.0","140000.0","0"]
]`

func TestCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))
		assert.Equal(t, "60", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(klines))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Candles(context.Background(), "btcusdt", "1m", 60)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1700000000000), got[0].OpenTime.UnixMilli())
	assert.Equal(t, 35000.10, got[0].Open)
	assert.Equal(t, 35100.0, got[0].High)
	assert.Equal(t, 34900.0, got[0].Low)
	assert.Equal(t, 35050.50, got[0].Close)
	assert.Equal(t, 8.25, got[1].Volume)
}

func TestCandles_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1700000000000,"abc","1","1","1","1"]]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Candles(context.Background(), "BTCUSDT", "1m", 1)
	assert.Error(t, err)
}

func TestCandles_ShortRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1700000000000,"1","1"]]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Candles(context.Background(), "BTCUSDT", "1m", 1)
	assert.ErrorContains(t, err, "at least 6 fields")
}

func TestCandles_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Candles(context.Background(), "NOPE", "1m", 1)
	assert.ErrorContains(t, err, "Invalid symbol")
}
