package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
	"CloudLab/internal/domain/service"
	"CloudLab/internal/services/features"
	"CloudLab/internal/services/indicators"
	"CloudLab/pkg/cache"
	"CloudLab/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const (
	sourceCoinGecko = "coingecko"
	sourceBinance   = "binance"
	sourceWorldBank = "worldbank"

	syntheticLevel = 100.0

	defaultFetchTimeout = 10 * time.Second
)

// MarketTTL is how long each endpoint's payload stays cached.
type MarketTTL struct {
	Prices     time.Duration
	Candles    time.Duration
	History    time.Duration
	Global     time.Duration
	Exchanges  time.Duration
	Indicators time.Duration
	// FetchTimeout bounds one shared upstream call. The call outlives the
	// request that started it so other waiters still get the result.
	FetchTimeout time.Duration
}

// MarketData fronts the upstream market APIs with an explicit cache.
// Concurrent misses on one key share a single upstream call; failures are
// reported as *models.UnavailableError and never cached.
type MarketData struct {
	crypto  service.CryptoMarket
	candles service.CandleProvider
	macro   service.MacroProvider
	cache   cache.Cache
	ttl     MarketTTL
	metrics drepo.Metrics
	logger  *logger.Logger
	group   singleflight.Group
	now     func() time.Time
}

func NewMarketData(
	crypto service.CryptoMarket,
	candles service.CandleProvider,
	macro service.MacroProvider,
	c cache.Cache,
	ttl MarketTTL,
	metrics drepo.Metrics,
	l *logger.Logger,
) *MarketData {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	if ttl.FetchTimeout <= 0 {
		ttl.FetchTimeout = defaultFetchTimeout
	}
	return &MarketData{
		crypto:  crypto,
		candles: candles,
		macro:   macro,
		cache:   c,
		ttl:     ttl,
		metrics: metrics,
		logger:  l,
		now:     time.Now,
	}
}

// SpotPrices implements service.PriceProvider on top of the cache.
func (m *MarketData) SpotPrices(ctx context.Context, ids []string, vs string) (models.SpotPrices, error) {
	ids = normalizeIDs(ids)
	vs = strings.ToLower(vs)
	key := cache.GenerateKeyWithParams("prices", strings.Join(ids, ","), vs)

	prices, err := cached(ctx, m, "prices", sourceCoinGecko, key, m.ttl.Prices, func(ctx context.Context) (models.SpotPrices, error) {
		return m.crypto.SpotPrices(ctx, ids, vs)
	})
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if p, ok := prices.Price(id, vs); ok {
			m.metrics.RecordLastPrice(id, vs, p)
		}
	}
	return prices, nil
}

// History returns the price series of id over days.
func (m *MarketData) History(ctx context.Context, id, vs string, days int, interval string) ([]models.PricePoint, error) {
	id, vs = strings.ToLower(id), strings.ToLower(vs)
	key := cache.GenerateKeyWithParams("history", id, vs, days, interval)
	return cached(ctx, m, "history", sourceCoinGecko, key, m.ttl.History, func(ctx context.Context) ([]models.PricePoint, error) {
		return m.crypto.History(ctx, id, vs, days, interval)
	})
}

// Global returns aggregate market statistics.
func (m *MarketData) Global(ctx context.Context) (models.GlobalStats, error) {
	return cached(ctx, m, "global", sourceCoinGecko, "global", m.ttl.Global, m.crypto.Global)
}

// Exchanges returns one page of exchanges.
func (m *MarketData) Exchanges(ctx context.Context, page, perPage int) ([]models.Exchange, error) {
	key := cache.GenerateKeyWithParams("exchanges", page, perPage)
	return cached(ctx, m, "exchanges", sourceCoinGecko, key, m.ttl.Exchanges, func(ctx context.Context) ([]models.Exchange, error) {
		return m.crypto.Exchanges(ctx, page, perPage)
	})
}

// Candles returns klines for symbol. When the upstream fails a flat
// synthetic series is returned instead, flagged and carrying a notice.
func (m *MarketData) Candles(ctx context.Context, symbol string, interval drepo.Interval, limit int) (models.CandleSeries, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.GenerateKeyWithParams("candles", symbol, interval, limit)

	bars, err := cached(ctx, m, "candles", sourceBinance, key, m.ttl.Candles, func(ctx context.Context) ([]models.Candle, error) {
		return m.candles.Candles(ctx, symbol, string(interval), limit)
	})
	if err == nil {
		return models.CandleSeries{Symbol: symbol, Interval: string(interval), Candles: bars}, nil
	}
	if !errors.Is(err, models.ErrDataUnavailable) {
		return models.CandleSeries{}, err
	}
	return models.CandleSeries{
		Symbol:    symbol,
		Interval:  string(interval),
		Candles:   SyntheticCandles(m.now(), interval, limit, syntheticLevel),
		Synthetic: true,
		Notice:    err.Error(),
	}, nil
}

// Technicals computes indicators over the candle window. Results built on
// synthetic candles are returned but not cached.
func (m *MarketData) Technicals(ctx context.Context, symbol string, interval drepo.Interval, limit int) (models.Technicals, error) {
	symbol = strings.ToUpper(symbol)
	key := cache.GenerateKeyWithParams("technicals", symbol, interval, limit)

	if t, ok, err := cache.GetDecoded[models.Technicals](ctx, m.cache, key); err == nil && ok {
		m.metrics.RecordCache("technicals", true)
		return t, nil
	}
	m.metrics.RecordCache("technicals", false)

	series, err := m.Candles(ctx, symbol, interval, limit)
	if err != nil {
		return models.Technicals{}, err
	}

	start := time.Now()
	tech, err := indicators.Compute(symbol, interval, series.Candles)
	if err != nil {
		return tech, fmt.Errorf("technicals %s: %w", symbol, err)
	}
	m.metrics.RecordLatency("technicals", time.Since(start).Seconds())

	tech.Synthetic = series.Synthetic
	if !series.Synthetic {
		if err := cache.SetEncoded(ctx, m.cache, key, tech, m.ttl.Indicators); err != nil {
			m.logger.Warn("cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return tech, nil
}

// SearchIndicators finds macro indicators by id or name.
func (m *MarketData) SearchIndicators(ctx context.Context, query string) ([]models.Indicator, error) {
	query = strings.TrimSpace(query)
	// Free text; hashed so arbitrary input stays a single key segment.
	key := cache.GenerateKeyWithParams("macro:search", cache.HashKey(strings.ToLower(query)))
	return cached(ctx, m, "macro_search", sourceWorldBank, key, m.ttl.Indicators, func(ctx context.Context) ([]models.Indicator, error) {
		return m.macro.SearchIndicators(ctx, query)
	})
}

// IndicatorSeries reads a yearly macro series.
func (m *MarketData) IndicatorSeries(ctx context.Context, country, indicator string, fromYear, toYear int) (models.IndicatorSeries, error) {
	key := cache.GenerateKeyWithParams("macro:series", country, indicator, fromYear, toYear)
	return cached(ctx, m, "macro_series", sourceWorldBank, key, m.ttl.Indicators, func(ctx context.Context) (models.IndicatorSeries, error) {
		return m.macro.IndicatorSeries(ctx, country, indicator, fromYear, toYear)
	})
}

// cached serves key from the cache or fetches it once for all concurrent
// callers, storing only successful results. Each caller stops waiting when
// its own ctx ends; the fetch itself runs on a detached context.
func cached[T any](
	ctx context.Context,
	m *MarketData,
	endpoint, source, key string,
	ttl time.Duration,
	fetch func(context.Context) (T, error),
) (T, error) {
	v, ok, err := cache.GetDecoded[T](ctx, m.cache, key)
	if err != nil {
		m.logger.Warn("cache read failed", logger.String("key", key), logger.Error(err))
	}
	if ok {
		m.metrics.RecordCache(endpoint, true)
		return v, nil
	}
	m.metrics.RecordCache(endpoint, false)

	ch := m.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.ttl.FetchTimeout)
		defer cancel()

		start := time.Now()
		out, err := fetch(fctx)
		m.metrics.RecordFetch(source, err == nil)
		m.metrics.RecordLatency("fetch_"+endpoint, time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		if err := cache.SetEncoded(fctx, m.cache, key, out, ttl); err != nil {
			m.logger.Warn("cache write failed", logger.String("key", key), logger.Error(err))
		}
		return out, nil
	})

	var res interface{}
	select {
	case r := <-ch:
		res, err = r.Val, r.Err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		m.metrics.RecordError("fetch_" + endpoint)
		m.logger.Warn("market fetch failed",
			logger.String("source", source),
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		var zero T
		return zero, &models.UnavailableError{Source: source, Err: err}
	}
	return res.(T), nil
}

// SyntheticCandles builds a flat series of n bars ending at now.
func SyntheticCandles(now time.Time, interval drepo.Interval, n int, level float64) []models.Candle {
	if n <= 0 {
		return nil
	}
	step := features.IntervalDuration(interval)
	last := now.UTC().Truncate(step)
	out := make([]models.Candle, n)
	for i := range out {
		out[i] = models.Candle{
			OpenTime: last.Add(-time.Duration(n-1-i) * step),
			Open:     level,
			High:     level,
			Low:      level,
			Close:    level,
		}
	}
	return out
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
