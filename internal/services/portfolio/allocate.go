// Package portfolio splits a portfolio value across tokens.
package portfolio

import (
	"fmt"
	"math"
	"strings"

	"CloudLab/internal/domain/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DefaultVsCurrency is used when the input names no quote currency.
const DefaultVsCurrency = "usd"

// Normalize lower-cases and trims tokens, dropping blanks and repeats while
// keeping first-seen order. Allocation weights whose keys fold to the same
// token are added.
func Normalize(in models.AllocationInput) models.AllocationInput {
	seen := make(map[string]bool, len(in.Tokens))
	tokens := make([]string, 0, len(in.Tokens))
	for _, t := range in.Tokens {
		t = foldToken(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tokens = append(tokens, t)
	}

	alloc := make(map[string]float64, len(in.Allocations))
	for k, v := range in.Allocations {
		alloc[foldToken(k)] += v
	}

	in.Tokens = tokens
	in.Allocations = alloc
	return in
}

func foldToken(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Allocate values each token at size x pct / 100. Percentages that do not
// sum to 100 only raise a warning; they are never renormalised. Units are
// set for tokens with a positive price in prices.
func Allocate(in models.AllocationInput, prices models.SpotPrices) (models.PortfolioAllocation, error) {
	var out models.PortfolioAllocation
	in = Normalize(in)

	if len(in.Tokens) == 0 {
		return out, &models.RangeError{Field: "tokens", Value: 0, Min: 1, Max: math.Inf(1)}
	}
	if err := models.CheckRange("portfolio_size", in.PortfolioSize, 0, 1e12); err != nil {
		return out, err
	}

	vs := strings.ToLower(in.VsCurrency)
	if vs == "" {
		vs = DefaultVsCurrency
	}
	size := decimal.NewFromFloat(in.PortfolioSize)

	out.VsCurrency = vs
	out.PortfolioSize = size
	out.TotalAllocated = decimal.Zero
	for _, token := range in.Tokens {
		pct := in.Allocations[token]
		if err := models.CheckRange("allocation."+token, pct, 0, 100); err != nil {
			return out, err
		}
		out.PercentSum += pct

		value := size.Mul(decimal.NewFromFloat(pct)).Div(hundred).Round(2)
		asset := models.AssetAllocation{Token: token, Percent: pct, Value: value}

		if price, ok := prices.Price(token, vs); ok && price > 0 {
			p := price
			units := value.Div(decimal.NewFromFloat(price)).Round(8)
			asset.Price = &p
			asset.Units = &units
		} else {
			asset.Notice = fmt.Sprintf("no %s price for %s", vs, token)
		}

		out.TotalAllocated = out.TotalAllocated.Add(value)
		out.Assets = append(out.Assets, asset)
	}

	if math.Abs(out.PercentSum-100) > 1e-9 {
		out.Warning = fmt.Sprintf("allocations sum to %.2f%%, not 100%%; values use the percentages as given", out.PercentSum)
	}
	return out, nil
}
