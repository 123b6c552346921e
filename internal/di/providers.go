package di

import (
	"context"
	"fmt"
	"time"

	"CloudLab/internal/domain/repository"
	"CloudLab/internal/domain/service"
	"CloudLab/internal/handler/api"
	mid "CloudLab/internal/middleware"
	internalrepo "CloudLab/internal/repository"
	"CloudLab/internal/service/ratelimit"
	"CloudLab/internal/services/binance"
	"CloudLab/internal/services/coingecko"
	"CloudLab/internal/services/fraud"
	"CloudLab/internal/services/soc"
	"CloudLab/internal/services/worldbank"
	"CloudLab/internal/usecase"
	"CloudLab/pkg/cache"
	pkgch "CloudLab/pkg/clickhouse"
	"CloudLab/pkg/config"
	xhttp "CloudLab/pkg/http"
	"CloudLab/pkg/http/middleware"
	pkgkafka "CloudLab/pkg/kafka"
	applogger "CloudLab/pkg/logger"
	"CloudLab/pkg/metrics"
	"CloudLab/pkg/server"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
		Service:    "cloudlab",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache selects the market data cache backend.
func ProvideCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.Cache.Backend == "memory" {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
			cache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
		), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if cfg.Cache.Backend == "redis" {
		return redisCache, nil
	}
	return cache.NewLayeredCache(redisCache,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredMaxL1TTL(cfg.Market.TTL.Prices),
	), nil
}

func upstreamOptions(cfg *config.Config) []xhttp.ClientOption {
	return []xhttp.ClientOption{
		xhttp.WithTimeout(cfg.Market.Timeout),
		xhttp.WithUserAgent(cfg.Market.UserAgent),
	}
}

func ProvideCryptoMarket(cfg *config.Config) service.CryptoMarket {
	return coingecko.New(cfg.Market.CoinGeckoURL, upstreamOptions(cfg)...)
}

func ProvideCandleProvider(cfg *config.Config) service.CandleProvider {
	return binance.New(cfg.Market.BinanceURL, upstreamOptions(cfg)...)
}

func ProvideMacroProvider(cfg *config.Config) service.MacroProvider {
	return worldbank.New(cfg.Market.WorldBankURL, upstreamOptions(cfg)...)
}

func ProvideMarketTTL(cfg *config.Config) usecase.MarketTTL {
	t := cfg.Market.TTL
	return usecase.MarketTTL{
		Prices:     t.Prices,
		Candles:    t.Candles,
		History:    t.History,
		Global:     t.Global,
		Exchanges:  t.Exchanges,
		Indicators: t.Indicators,

		FetchTimeout: cfg.Market.Timeout,
	}
}

// ProvidePriceProvider serves portfolio prices through the market cache.
func ProvidePriceProvider(m *usecase.MarketData) service.PriceProvider {
	return m
}

// ProvideKafkaProducer creates a Kafka producer. It returns nil unless
// alerts go to Kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Alerts.Backend != usecase.BackendKafka {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithAutoCreateTopic(true),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideClickHouseClient creates a ClickHouse client. It returns nil
// unless alerts go to ClickHouse.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Alerts.Backend != usecase.BackendClickHouse {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideAlertProcessor binds the alert backend named in config.
func ProvideAlertProcessor(
	cfg *config.Config,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	metrics repository.Metrics,
	l *applogger.Logger,
) (*usecase.AlertProcessor, error) {
	var (
		pub   repository.AlertPublisher
		store repository.AlertStorage
	)
	switch cfg.Alerts.Backend {
	case usecase.BackendKafka:
		pub = internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic)
	case usecase.BackendClickHouse:
		s := internalrepo.NewCHAlertStore(chClient)
		s.SetLogger(l)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Init(ctx); err != nil {
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		store = s
	}
	return usecase.NewAlertProcessor(pub, store, metrics, cfg.Alerts.Backend), nil
}

func ProvideAlertPipeline(cfg *config.Config, proc *usecase.AlertProcessor, metrics repository.Metrics) *mid.AlertPipeline {
	return mid.NewAlertPipeline(proc, metrics,
		mid.WithMaxPerGeo(cfg.Alerts.MaxPerGeo),
		mid.WithBufferSize(cfg.Alerts.BufferSize),
	)
}

// ProvideSOCLab forwards flagged rows through the alert pipeline.
func ProvideSOCLab(cfg *config.Config, pipe *mid.AlertPipeline, metrics repository.Metrics, l *applogger.Logger) *usecase.SOCLab {
	opts := soc.DefaultDetectOptions()
	opts.Trees = cfg.SOC.Trees
	opts.Contamination = cfg.SOC.Contamination
	opts.Seed = cfg.SOC.DetectorSeed
	return usecase.NewSOCLab(pipe, opts, metrics, l)
}

func ProvideFraudLab(cfg *config.Config, metrics repository.Metrics, l *applogger.Logger) *usecase.FraudLab {
	opts := fraud.DefaultAnalyzeOptions()
	opts.Contamination = cfg.Fraud.Contamination
	return usecase.NewFraudLab(usecase.FraudLabConfig{
		SyntheticFallback: cfg.Fraud.SyntheticFallback,
		SyntheticRows:     cfg.Fraud.SyntheticRows,
		Seed:              cfg.Fraud.Seed,
		Options:           opts,
	}, metrics, l)
}

func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	advisor *usecase.Advisor,
	market *usecase.MarketData,
	portfolio *usecase.PortfolioUseCase,
	socLab *usecase.SOCLab,
	fraudLab *usecase.FraudLab,
	alerts *usecase.AlertProcessor,
) *api.Handler {
	rl := middleware.RateLimitConfig{
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	}
	if cfg.RateLimit.Enabled {
		rl.Limiter = ratelimit.New()
	}
	return api.NewHandler(l, advisor, market, portfolio, socLab, fraudLab, alerts, api.Options{
		SOCRows:        cfg.SOC.DefaultRows,
		SOCSeed:        cfg.SOC.Seed,
		MaxUploadBytes: cfg.Fraud.MaxUploadBytes,
		RateLimit:      rl,
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.Handler,
	pipe *mid.AlertPipeline,
	alerts *usecase.AlertProcessor,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	c cache.Cache,
) *server.App {
	app := server.New(cfg, l, handler, pipe, alerts, c)
	if producer != nil {
		app.SetLogPublisher(producer, cfg.Kafka.LogTopic, 30*time.Second)
	}
	if chClient != nil {
		app.SetCloser("clickhouse", chClient.Close)
	}
	return app
}
