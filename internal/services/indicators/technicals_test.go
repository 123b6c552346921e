package indicators

import (
	"math"
	"testing"
	"time"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trend(n int, start, step float64) []models.Candle {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		c := start + step*float64(i)
		out[i] = models.Candle{OpenTime: t0.Add(time.Duration(i) * time.Minute), Open: c, High: c, Low: c, Close: c}
	}
	return out
}

func TestCompute_FlatSeries(t *testing.T) {
	candles := trend(60, 100, 0)
	tech, err := Compute("BTCUSDT", repository.Interval1m, candles)
	require.NoError(t, err)

	assert.Equal(t, 100.0, tech.LastClose)
	assert.Len(t, tech.SMA10, 51)
	assert.Len(t, tech.EMA20, 41)
	assert.NotEmpty(t, tech.BollingerMiddle)
	for _, p := range tech.SMA10 {
		assert.InDelta(t, 100, p.Value, 1e-9)
	}
	for _, p := range tech.BollingerMiddle {
		assert.InDelta(t, 100, p.Value, 1e-9)
	}
	assert.InDelta(t, 0, tech.RealizedVol, 1e-12)
	assert.Equal(t, candles[9].OpenTime, tech.SMA10[0].Time)
}

func TestCompute_Uptrend(t *testing.T) {
	tech, err := Compute("ETHUSDT", repository.Interval1h, trend(80, 100, 1))
	require.NoError(t, err)

	last := tech.SMA10[len(tech.SMA10)-1].Value
	assert.InDelta(t, 174.5, last, 1e-9)
	require.NotEmpty(t, tech.RSI14)
	assert.Greater(t, tech.RSI14[len(tech.RSI14)-1].Value, 70.0)
	assert.Greater(t, tech.RealizedVol, 0.0)
	n := len(tech.BollingerUpper)
	require.Positive(t, n)
	assert.Greater(t, tech.BollingerUpper[n-1].Value, tech.BollingerLower[len(tech.BollingerLower)-1].Value)
	for _, p := range tech.RSI14 {
		assert.False(t, math.IsNaN(p.Value))
	}
}

func TestCompute_TooFewCandles(t *testing.T) {
	_, err := Compute("BTCUSDT", repository.Interval1m, trend(MinCandles-1, 1, 1))
	assert.ErrorIs(t, err, models.ErrOutOfRange)
}
