package portfolio

import (
	"testing"

	"CloudLab/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_EvenSplit(t *testing.T) {
	prices := models.SpotPrices{
		"bitcoin":  {"usd": 50000},
		"ethereum": {"usd": 3000},
	}
	out, err := Allocate(models.AllocationInput{
		Tokens:        []string{"bitcoin", "ethereum"},
		Allocations:   map[string]float64{"bitcoin": 50, "ethereum": 50},
		PortfolioSize: 10000,
	}, prices)
	require.NoError(t, err)
	require.Len(t, out.Assets, 2)

	assert.True(t, out.Assets[0].Value.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.Assets[1].Value.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.TotalAllocated.Equal(decimal.NewFromInt(10000)))
	assert.Empty(t, out.Warning)
	assert.Equal(t, "usd", out.VsCurrency)

	require.NotNil(t, out.Assets[0].Units)
	assert.Equal(t, "0.1", out.Assets[0].Units.String())
	assert.Equal(t, "1.66666667", out.Assets[1].Units.String())
}

func TestAllocate_SumMismatchWarnsOnly(t *testing.T) {
	out, err := Allocate(models.AllocationInput{
		Tokens:        []string{"bitcoin", "solana"},
		Allocations:   map[string]float64{"bitcoin": 30, "solana": 30},
		PortfolioSize: 1000,
		VsCurrency:    "EUR",
	}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, out.Warning)
	assert.Equal(t, 60.0, out.PercentSum)
	assert.True(t, out.TotalAllocated.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "eur", out.VsCurrency)
	for _, a := range out.Assets {
		assert.Nil(t, a.Units)
		assert.Contains(t, a.Notice, "no eur price")
	}
}

func TestAllocate_MissingAllocationIsZero(t *testing.T) {
	out, err := Allocate(models.AllocationInput{
		Tokens:        []string{"bitcoin", "ethereum"},
		Allocations:   map[string]float64{"bitcoin": 100},
		PortfolioSize: 250,
	}, models.SpotPrices{"bitcoin": {"usd": 0}})
	require.NoError(t, err)

	assert.True(t, out.Assets[1].Value.IsZero())
	assert.Nil(t, out.Assets[0].Units)
	assert.Empty(t, out.Warning)
}

func TestAllocate_OutOfRange(t *testing.T) {
	_, err := Allocate(models.AllocationInput{PortfolioSize: 10}, nil)
	assert.ErrorIs(t, err, models.ErrOutOfRange)

	_, err = Allocate(models.AllocationInput{Tokens: []string{"x"}, PortfolioSize: -1}, nil)
	assert.ErrorIs(t, err, models.ErrOutOfRange)

	_, err = Allocate(models.AllocationInput{
		Tokens:        []string{"x"},
		Allocations:   map[string]float64{"x": 120},
		PortfolioSize: 1,
	}, nil)
	assert.ErrorIs(t, err, models.ErrOutOfRange)
}

func TestAllocate_NormalizesTokens(t *testing.T) {
	out, err := Allocate(models.AllocationInput{
		Tokens:        []string{" Bitcoin", "ETHEREUM", "bitcoin", ""},
		Allocations:   map[string]float64{"Bitcoin": 60, "ethereum": 40},
		PortfolioSize: 1000,
	}, models.SpotPrices{"bitcoin": {"usd": 50000}, "ethereum": {"usd": 2000}})
	require.NoError(t, err)

	require.Len(t, out.Assets, 2)
	assert.Equal(t, "bitcoin", out.Assets[0].Token)
	assert.Equal(t, "ethereum", out.Assets[1].Token)
	assert.Equal(t, 100.0, out.PercentSum)
	assert.True(t, out.TotalAllocated.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, out.Assets[0].Units)
	assert.Equal(t, "0.012", out.Assets[0].Units.String())
	assert.Empty(t, out.Warning)
}

func TestNormalize_MergesFoldedWeights(t *testing.T) {
	in := Normalize(models.AllocationInput{
		Tokens:      []string{"SOL", "sol "},
		Allocations: map[string]float64{"SOL": 30, " sol": 20},
	})
	assert.Equal(t, []string{"sol"}, in.Tokens)
	assert.Equal(t, map[string]float64{"sol": 50}, in.Allocations)
}
