package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"CloudLab/internal/domain/models"
)

var errUpstream = errors.New("connection refused")

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	return b, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

// expire drops every entry, as if all TTLs had elapsed.
func (c *fakeCache) expire() {
	c.mu.Lock()
	c.entries = map[string][]byte{}
	c.mu.Unlock()
}

type fakeMarket struct {
	mu        sync.Mutex
	calls     map[string]int
	prices    models.SpotPrices
	candles   []models.Candle
	fail      bool
	indicator []models.Indicator
	// gate, when set, holds Global until closed or the call's ctx ends.
	gate chan struct{}
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{calls: map[string]int{}}
}

func (f *fakeMarket) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.fail {
		return errUpstream
	}
	return nil
}

func (f *fakeMarket) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeMarket) SpotPrices(_ context.Context, _ []string, _ string) (models.SpotPrices, error) {
	if err := f.hit("prices"); err != nil {
		return nil, err
	}
	return f.prices, nil
}

func (f *fakeMarket) History(_ context.Context, _, _ string, days int, _ string) ([]models.PricePoint, error) {
	if err := f.hit("history"); err != nil {
		return nil, err
	}
	out := make([]models.PricePoint, days)
	for i := range out {
		out[i] = models.PricePoint{Time: time.Unix(int64(i)*86400, 0).UTC(), Price: float64(100 + i)}
	}
	return out, nil
}

func (f *fakeMarket) Global(ctx context.Context) (models.GlobalStats, error) {
	if err := f.hit("global"); err != nil {
		return models.GlobalStats{}, err
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.GlobalStats{}, ctx.Err()
		}
	}
	return models.GlobalStats{ActiveCryptocurrencies: 42}, nil
}

func (f *fakeMarket) Exchanges(context.Context, int, int) ([]models.Exchange, error) {
	if err := f.hit("exchanges"); err != nil {
		return nil, err
	}
	return []models.Exchange{{ID: "binance"}}, nil
}

func (f *fakeMarket) Candles(_ context.Context, _, _ string, _ int) ([]models.Candle, error) {
	if err := f.hit("candles"); err != nil {
		return nil, err
	}
	return f.candles, nil
}

func (f *fakeMarket) SearchIndicators(context.Context, string) ([]models.Indicator, error) {
	if err := f.hit("search"); err != nil {
		return nil, err
	}
	return f.indicator, nil
}

func (f *fakeMarket) IndicatorSeries(_ context.Context, country, indicator string, _, _ int) (models.IndicatorSeries, error) {
	if err := f.hit("series"); err != nil {
		return models.IndicatorSeries{}, err
	}
	return models.IndicatorSeries{Country: country, Indicator: indicator}, nil
}

type fakeSink struct {
	mu    sync.Mutex
	got   []*models.Alert
	calls int
	fail  bool
}

func (s *fakeSink) Process(_ context.Context, a *models.Alert) error {
	_, err := s.ProcessBatch(context.Background(), []*models.Alert{a})
	return err
}

func (s *fakeSink) ProcessBatch(_ context.Context, alerts []*models.Alert) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, errUpstream
	}
	s.calls++
	s.got = append(s.got, alerts...)
	return len(alerts), nil
}

type fakePublisher struct {
	published []*models.Alert
	closed    bool
}

func (p *fakePublisher) Publish(_ context.Context, a *models.Alert) error {
	p.published = append(p.published, a)
	return nil
}

func (p *fakePublisher) PublishBatch(_ context.Context, alerts []*models.Alert) error {
	p.published = append(p.published, alerts...)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

type fakeStorage struct {
	stored []*models.Alert
	err    error
}

func (s *fakeStorage) Init(context.Context) error { return nil }

func (s *fakeStorage) Store(_ context.Context, a *models.Alert) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, a)
	return nil
}

func (s *fakeStorage) StoreBatch(_ context.Context, alerts []*models.Alert) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, alerts...)
	return nil
}

func (s *fakeStorage) Recent(_ context.Context, limit int, geo string) ([]*models.Alert, error) {
	var out []*models.Alert
	for i := len(s.stored) - 1; i >= 0 && len(out) < limit; i-- {
		if geo == "" || s.stored[i].Geo == geo {
			out = append(out, s.stored[i])
		}
	}
	return out, nil
}

func (s *fakeStorage) Health(context.Context) error { return nil }
func (s *fakeStorage) Close() error                 { return nil }
