package usecase

import (
	"context"
	"fmt"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
	"CloudLab/internal/services/soc"
	"CloudLab/pkg/logger"

	"github.com/google/uuid"
)

// AlertSink accepts flagged events for delivery and reports how many were
// delivered.
type AlertSink interface {
	ProcessBatch(ctx context.Context, alerts []*models.Alert) (int, error)
}

// SOCLab runs synthetic anomaly hunts.
type SOCLab struct {
	sink    AlertSink
	opts    soc.DetectOptions
	metrics drepo.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

// NewSOCLab builds the lab. A nil sink disables alert forwarding.
func NewSOCLab(sink AlertSink, opts soc.DetectOptions, metrics drepo.Metrics, l *logger.Logger) *SOCLab {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &SOCLab{sink: sink, opts: opts, metrics: metrics, logger: l, now: time.Now}
}

// Hunt generates n rows with seed, labels them and forwards the flagged
// rows as alerts. Forwarding failures are logged, not returned.
func (s *SOCLab) Hunt(ctx context.Context, n int, seed uint64) (*models.SOCReport, error) {
	start := time.Now()
	rows := soc.GenerateAuthLogs(n, seed)

	labeled, threshold, err := soc.DetectAnomalies(rows, s.opts)
	if err != nil {
		return nil, fmt.Errorf("soc hunt: %w", err)
	}

	report := &models.SOCReport{
		RunID:       uuid.NewString(),
		Seed:        seed,
		Threshold:   threshold,
		Summary:     soc.Summarize(labeled),
		Anomalies:   soc.Anomalies(labeled),
		GeneratedAt: s.now().UTC(),
	}
	s.metrics.RecordAnomalyRatio("soc", float64(report.Summary.AnomalyCount)/float64(len(rows)))
	s.metrics.RecordLatency("soc_hunt", time.Since(start).Seconds())

	if s.sink != nil {
		report.AlertsForwarded = s.forward(ctx, report)
	}
	return report, nil
}

func (s *SOCLab) forward(ctx context.Context, report *models.SOCReport) int {
	if len(report.Anomalies) == 0 {
		return 0
	}
	alerts := make([]*models.Alert, 0, len(report.Anomalies))
	for _, r := range report.Anomalies {
		alerts = append(alerts, &models.Alert{
			ID:         uuid.NewString(),
			RunID:      report.RunID,
			Geo:        r.Geo,
			Hour:       r.Hour,
			DeviceRisk: r.DeviceRisk,
			VPN:        r.VPN,
			Outcome:    r.Outcome,
			Score:      r.Score,
			CreatedAt:  report.GeneratedAt,
		})
	}

	sent, err := s.sink.ProcessBatch(ctx, alerts)
	if err != nil {
		s.logger.Warn("alert forward failed",
			logger.String("run_id", report.RunID),
			logger.Int("alerts", len(alerts)),
			logger.Error(err),
		)
		return 0
	}
	if dropped := len(alerts) - sent; dropped > 0 {
		s.logger.Debug("alerts not delivered",
			logger.String("run_id", report.RunID),
			logger.Int("dropped", dropped),
		)
	}
	return sent
}
