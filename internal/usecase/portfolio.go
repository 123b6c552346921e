package usecase

import (
	"context"
	"strings"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/service"
	"CloudLab/internal/services/portfolio"
	"CloudLab/pkg/logger"
)

// PortfolioUseCase values allocations with live prices.
type PortfolioUseCase struct {
	prices service.PriceProvider
	logger *logger.Logger
}

func NewPortfolioUseCase(prices service.PriceProvider, l *logger.Logger) *PortfolioUseCase {
	if l == nil {
		l = logger.Nop()
	}
	return &PortfolioUseCase{prices: prices, logger: l}
}

// Allocate fetches prices for in.Tokens and splits the portfolio. Missing
// prices leave the values intact and set PricesNotice.
func (uc *PortfolioUseCase) Allocate(ctx context.Context, in models.AllocationInput) (models.PortfolioAllocation, error) {
	in = portfolio.Normalize(in)
	vs := strings.ToLower(in.VsCurrency)
	if vs == "" {
		vs = portfolio.DefaultVsCurrency
	}
	in.VsCurrency = vs

	var notice string
	prices, err := uc.prices.SpotPrices(ctx, in.Tokens, vs)
	if err != nil {
		uc.logger.Warn("portfolio prices unavailable", logger.Error(err))
		notice = err.Error()
		prices = nil
	}

	out, err := portfolio.Allocate(in, prices)
	if err != nil {
		return out, err
	}
	out.PricesNotice = notice
	return out, nil
}
