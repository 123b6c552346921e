package service

import (
	"context"

	"CloudLab/internal/domain/models"
)

// PriceProvider quotes spot prices for asset ids in one currency.
type PriceProvider interface {
	SpotPrices(ctx context.Context, ids []string, vs string) (models.SpotPrices, error)
}

// CryptoMarket is the full CoinGecko-style market surface.
type CryptoMarket interface {
	PriceProvider
	History(ctx context.Context, id, vs string, days int, interval string) ([]models.PricePoint, error)
	Global(ctx context.Context) (models.GlobalStats, error)
	Exchanges(ctx context.Context, page, perPage int) ([]models.Exchange, error)
}

// CandleProvider returns OHLCV bars, oldest first.
type CandleProvider interface {
	Candles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// MacroProvider searches and reads yearly macro-economic indicators.
type MacroProvider interface {
	SearchIndicators(ctx context.Context, query string) ([]models.Indicator, error)
	IndicatorSeries(ctx context.Context, country, indicator string, fromYear, toYear int) (models.IndicatorSeries, error)
}
