package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "CloudLab/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", xhttp.WithTimeout(2*time.Second))
}

func TestSpotPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":50000},"ethereum":{"usd":3000.5}}`))
	})

	prices, err := c.SpotPrices(context.Background(), []string{"bitcoin", "ethereum"}, "usd")
	require.NoError(t, err)

	p, ok := prices.Price("ethereum", "usd")
	assert.True(t, ok)
	assert.Equal(t, 3000.5, p)
	_, ok = prices.Price("solana", "usd")
	assert.False(t, ok)
}

func TestSpotPrices_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := c.SpotPrices(context.Background(), []string{"bitcoin"}, "usd")
	require.Error(t, err)

	var se *xhttp.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{"prices":[[1700000000000,35000.1],[1700086400000,36000.2]],"total_volumes":[]}`))
	})

	pts, err := c.History(context.Background(), "bitcoin", "usd", 30, "daily")
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), pts[0].Time.UTC())
	assert.Equal(t, 36000.2, pts[1].Price)
}

func TestGlobal(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"active_cryptocurrencies":12000,"markets":900,
			"total_market_cap":{"usd":2.5e12},"total_volume":{"usd":9e10},
			"market_cap_percentage":{"btc":51.2},"market_cap_change_percentage_24h_usd":-1.4,
			"updated_at":1700000000}}`))
	})

	g, err := c.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12000, g.ActiveCryptocurrencies)
	assert.Equal(t, 51.2, g.MarketCapPercentage["btc"])
	assert.Equal(t, -1.4, g.MarketCapChange24hPct)
	assert.Equal(t, int64(1700000000), g.UpdatedAt.Unix())
}

func TestExchanges(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[
			{"id":"small","name":"Small","country":null,"year_established":null,"trust_score":null,"trade_volume_24h_btc":10},
			{"id":"big","name":"Big","country":"Cayman Islands","year_established":2017,"trust_score":10,"trust_score_rank":1,"trade_volume_24h_btc":90000}
		]`))
	})

	ex, err := c.Exchanges(context.Background(), 2, 5)
	require.NoError(t, err)
	require.Len(t, ex, 2)
	assert.Equal(t, "big", ex[0].ID)
	assert.Equal(t, 2017, ex[0].YearEstablished)
	assert.Empty(t, ex[1].Country)
	assert.Zero(t, ex[1].TrustScore)
}

func TestUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cloudlab-test/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":1}}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, xhttp.WithTimeout(2*time.Second), xhttp.WithUserAgent("cloudlab-test/2.0"))
	_, err := c.SpotPrices(context.Background(), []string{"bitcoin"}, "usd")
	require.NoError(t, err)
}
