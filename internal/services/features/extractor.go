// Package features derives return and volatility series from candles.
package features

import (
	"math"
	"time"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/repository"
)

// ComputeLogReturns computes log returns r_t = ln(C_t / C_{t-1}).
// It returns a slice of length len(candles)-1, or nil if insufficient data.
func ComputeLogReturns(candles []models.Candle) []float64 {
	if len(candles) < 2 {
		return nil
	}
	out := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		cur := candles[i].Close
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// RealizedVolatility computes annualized realized volatility over the last
// window returns using the provided number of bars per year.
func RealizedVolatility(logReturns []float64, window int, barsPerYear float64) float64 {
	if window <= 1 || len(logReturns) < window {
		return 0
	}
	sum := 0.0
	sum2 := 0.0
	for i := len(logReturns) - window; i < len(logReturns); i++ {
		r := logReturns[i]
		sum += r
		sum2 += r * r
	}
	n := float64(window)
	mean := sum / n
	variance := (sum2 - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	// annualize
	return math.Sqrt(variance * barsPerYear)
}

// IntervalDuration is the bar length of a kline interval.
func IntervalDuration(iv repository.Interval) time.Duration {
	switch iv {
	case repository.Interval1m:
		return time.Minute
	case repository.Interval3m:
		return 3 * time.Minute
	case repository.Interval5m:
		return 5 * time.Minute
	case repository.Interval15m:
		return 15 * time.Minute
	case repository.Interval30m:
		return 30 * time.Minute
	case repository.Interval1h:
		return time.Hour
	case repository.Interval2h:
		return 2 * time.Hour
	case repository.Interval4h:
		return 4 * time.Hour
	case repository.Interval6h:
		return 6 * time.Hour
	case repository.Interval12h:
		return 12 * time.Hour
	case repository.Interval1d:
		return 24 * time.Hour
	case repository.Interval1w:
		return 7 * 24 * time.Hour
	default:
		return time.Minute
	}
}

// BarsPerYear returns the number of bars per year for a kline interval.
// Crypto trades around the clock, so a year is 365 full days.
func BarsPerYear(iv repository.Interval) float64 {
	return float64(365*24*time.Hour) / float64(IntervalDuration(iv))
}
