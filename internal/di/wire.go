//go:build wireinject
// +build wireinject

package di

import (
	"CloudLab/internal/usecase"
	"CloudLab/pkg/config"
	"CloudLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Upstream market sources
		ProvideCryptoMarket,
		ProvideCandleProvider,
		ProvideMacroProvider,
		ProvideMarketTTL,

		// Alert backends
		ProvideKafkaProducer,
		ProvideClickHouseClient,
		ProvideAlertProcessor,
		ProvideAlertPipeline,

		// Use cases
		usecase.NewMarketData,
		ProvidePriceProvider,
		usecase.NewPortfolioUseCase,
		usecase.NewAdvisor,
		ProvideSOCLab,
		ProvideFraudLab,

		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
