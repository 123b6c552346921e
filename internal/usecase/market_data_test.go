package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTTL = MarketTTL{
	Prices:     15 * time.Second,
	Candles:    time.Minute,
	History:    3 * time.Minute,
	Global:     3 * time.Minute,
	Exchanges:  3 * time.Minute,
	Indicators: 3 * time.Minute,
}

func newMarketData(f *fakeMarket, c *fakeCache) *MarketData {
	return NewMarketData(f, f, f, c, testTTL, nil, nil)
}

func TestMarketData_PricesServedFromCache(t *testing.T) {
	f := newFakeMarket()
	f.prices = models.SpotPrices{"bitcoin": {"usd": 50000}}
	c := newFakeCache()
	m := newMarketData(f, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, err := m.SpotPrices(ctx, []string{"Bitcoin"}, "USD")
		require.NoError(t, err)
		price, ok := p.Price("bitcoin", "usd")
		require.True(t, ok)
		assert.Equal(t, 50000.0, price)
	}
	assert.Equal(t, 1, f.count("prices"))
	assert.Equal(t, 15*time.Second, c.ttls["prices:bitcoin:usd"])

	c.expire()
	_, err := m.SpotPrices(ctx, []string{"bitcoin"}, "usd")
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("prices"))
}

func TestMarketData_UpstreamFailureIsUnavailable(t *testing.T) {
	f := newFakeMarket()
	f.fail = true
	c := newFakeCache()
	m := newMarketData(f, c)

	_, err := m.Global(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
	assert.ErrorIs(t, err, errUpstream)
	assert.Empty(t, c.entries)

	f.fail = false
	g, err := m.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, g.ActiveCryptocurrencies)
}

func TestMarketData_ConcurrentMissesShareFetch(t *testing.T) {
	f := newFakeMarket()
	c := newFakeCache()
	m := newMarketData(f, c)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.History(context.Background(), "bitcoin", "usd", 30, "daily")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, f.count("history"), 1)
	assert.LessOrEqual(t, f.count("history"), 8)

	pts, err := m.History(context.Background(), "bitcoin", "usd", 30, "daily")
	require.NoError(t, err)
	assert.Len(t, pts, 30)
}

func TestMarketData_SharedFetchOutlivesCanceledCaller(t *testing.T) {
	f := newFakeMarket()
	f.gate = make(chan struct{})
	m := newMarketData(f, newFakeCache())

	type result struct {
		stats models.GlobalStats
		err   error
	}
	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan result, 1)
	go func() {
		g, err := m.Global(ctx)
		first <- result{g, err}
	}()
	require.Eventually(t, func() bool { return f.count("global") == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan result, 1)
	go func() {
		g, err := m.Global(context.Background())
		second <- result{g, err}
	}()

	cancel()
	r := <-first
	assert.ErrorIs(t, r.err, context.Canceled)

	close(f.gate)
	r = <-second
	require.NoError(t, r.err)
	assert.Equal(t, 42, r.stats.ActiveCryptocurrencies)
	assert.Equal(t, 1, f.count("global"))
}

func TestMarketData_CandlesFallBackToSynthetic(t *testing.T) {
	f := newFakeMarket()
	f.fail = true
	m := newMarketData(f, newFakeCache())
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC) }

	series, err := m.Candles(context.Background(), "btcusdt", drepo.Interval1m, 60)
	require.NoError(t, err)

	assert.True(t, series.Synthetic)
	assert.NotEmpty(t, series.Notice)
	assert.Equal(t, "BTCUSDT", series.Symbol)
	require.Len(t, series.Candles, 60)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), series.Candles[59].OpenTime)
	assert.Equal(t, series.Candles[0].Close, series.Candles[59].Close)
}

func TestMarketData_Technicals(t *testing.T) {
	f := newFakeMarket()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		c := 100 + float64(i)
		f.candles = append(f.candles, models.Candle{OpenTime: t0.Add(time.Duration(i) * time.Minute), Close: c, Open: c, High: c, Low: c})
	}
	c := newFakeCache()
	m := newMarketData(f, c)

	tech, err := m.Technicals(context.Background(), "BTCUSDT", drepo.Interval1m, 60)
	require.NoError(t, err)
	assert.False(t, tech.Synthetic)
	assert.Equal(t, 159.0, tech.LastClose)

	again, err := m.Technicals(context.Background(), "BTCUSDT", drepo.Interval1m, 60)
	require.NoError(t, err)
	assert.Equal(t, tech.LastClose, again.LastClose)
	assert.Equal(t, 1, f.count("candles"))
}

func TestMarketData_MacroCached(t *testing.T) {
	f := newFakeMarket()
	f.indicator = []models.Indicator{{ID: "NY.GDP.MKTP.CD", Name: "GDP"}}
	m := newMarketData(f, newFakeCache())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := m.SearchIndicators(ctx, "gdp")
		require.NoError(t, err)
		assert.Len(t, got, 1)

		s, err := m.IndicatorSeries(ctx, "SGP", "NY.GDP.MKTP.CD", 2000, 2024)
		require.NoError(t, err)
		assert.Equal(t, "SGP", s.Country)
	}
	assert.Equal(t, 1, f.count("search"))
	assert.Equal(t, 1, f.count("series"))
}
