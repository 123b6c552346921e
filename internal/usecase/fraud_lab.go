package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
	"CloudLab/internal/services/fraud"
	"CloudLab/pkg/logger"
)

const (
	FraudSourceUpload    = "upload"
	FraudSourceSynthetic = "synthetic"
)

// FraudLabConfig controls the synthetic path.
type FraudLabConfig struct {
	SyntheticFallback bool
	SyntheticRows     int
	Seed              uint64
	Options           fraud.AnalyzeOptions
}

// FraudLab scores uploaded or synthetic transactions.
type FraudLab struct {
	cfg     FraudLabConfig
	metrics drepo.Metrics
	logger  *logger.Logger
}

func NewFraudLab(cfg FraudLabConfig, metrics drepo.Metrics, l *logger.Logger) *FraudLab {
	if cfg.SyntheticRows <= 0 {
		cfg.SyntheticRows = 1000
	}
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &FraudLab{cfg: cfg, metrics: metrics, logger: l}
}

// Analyze scores the CSV in r, or synthetic data when r is nil. A parse
// failure falls back to synthetic data when enabled, with the parse error
// as the report notice; otherwise the *models.UploadError is returned.
func (f *FraudLab) Analyze(ctx context.Context, r io.Reader) (models.FraudReport, error) {
	start := time.Now()

	source := FraudSourceSynthetic
	var notice string
	var txs []models.Transaction

	if r != nil {
		parsed, err := fraud.ParseTransactionsCSV(r)
		switch {
		case err == nil:
			source = FraudSourceUpload
			txs = parsed
		case f.cfg.SyntheticFallback:
			f.logger.Debug("fraud upload rejected, using synthetic data", logger.Error(err))
			notice = err.Error()
		default:
			return models.FraudReport{}, err
		}
	}
	if txs == nil {
		txs = fraud.GenerateTransactions(f.cfg.SyntheticRows, f.cfg.Seed)
	}

	if err := ctx.Err(); err != nil {
		return models.FraudReport{}, err
	}

	rep, err := fraud.Analyze(txs, f.cfg.Options)
	if err != nil {
		return rep, fmt.Errorf("fraud analyze: %w", err)
	}
	rep.Source = source
	rep.Notice = notice

	f.metrics.RecordAnomalyRatio("fraud", rep.AnomalyRate)
	f.metrics.RecordLatency("fraud_analyze", time.Since(start).Seconds())
	return rep, nil
}
