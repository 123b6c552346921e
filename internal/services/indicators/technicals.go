// Package indicators computes technical indicators over candle windows.
package indicators

import (
	"math"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/repository"
	"CloudLab/internal/services/features"

	"github.com/markcheno/go-talib"
)

const (
	smaPeriod       = 10
	emaPeriod       = 20
	rsiPeriod       = 14
	bollingerPeriod = 20
	bollingerDev    = 2.0
	volWindow       = 30

	// MinCandles is the shortest window every indicator can warm up on.
	MinCandles = 40
)

// Compute derives SMA(10), EMA(20), RSI(14), Bollinger(20, 2) and annualised
// realized volatility from candles, oldest first.
func Compute(symbol string, interval repository.Interval, candles []models.Candle) (models.Technicals, error) {
	out := models.Technicals{Symbol: symbol, Interval: string(interval)}
	if len(candles) < MinCandles {
		return out, &models.RangeError{Field: "candles", Value: float64(len(candles)), Min: MinCandles, Max: math.Inf(1)}
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	out.LastClose = closes[len(closes)-1]

	out.SMA10 = series(candles, talib.Sma(closes, smaPeriod), smaPeriod-1)
	out.EMA20 = series(candles, talib.Ema(closes, emaPeriod), emaPeriod-1)
	out.RSI14 = series(candles, talib.Rsi(closes, rsiPeriod), rsiPeriod)

	upper, middle, lower := talib.BBands(closes, bollingerPeriod, bollingerDev, bollingerDev, talib.SMA)
	out.BollingerUpper = series(candles, upper, bollingerPeriod-1)
	out.BollingerMiddle = series(candles, middle, bollingerPeriod-1)
	out.BollingerLower = series(candles, lower, bollingerPeriod-1)

	returns := features.ComputeLogReturns(candles)
	window := min(volWindow, len(returns))
	out.RealizedVol = features.RealizedVolatility(returns, window, features.BarsPerYear(interval))
	return out, nil
}

// series drops the warm-up prefix talib fills with zeros.
func series(candles []models.Candle, vals []float64, warmup int) []models.SeriesPoint {
	if warmup >= len(vals) {
		return nil
	}
	out := make([]models.SeriesPoint, 0, len(vals)-warmup)
	for i := warmup; i < len(vals); i++ {
		if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
			continue
		}
		out = append(out, models.SeriesPoint{Time: candles[i].OpenTime, Value: vals[i]})
	}
	return out
}
