package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CloudLab/internal/domain/models"
	drepo "CloudLab/internal/domain/repository"
)

const (
	BackendNone       = "none"
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// ErrAlertsDisabled is returned when no alert backend can serve the call.
var ErrAlertsDisabled = errors.New("alert backend disabled")

// AlertProcessor routes SOC alerts to the configured backend.
type AlertProcessor struct {
	pub     drepo.AlertPublisher
	store   drepo.AlertStorage
	metrics drepo.Metrics
	backend string
}

// NewAlertProcessor creates a new AlertProcessor instance.
func NewAlertProcessor(
	pub drepo.AlertPublisher,
	store drepo.AlertStorage,
	metrics drepo.Metrics,
	backend string,
) *AlertProcessor {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if backend == "" {
		backend = BackendNone
	}
	return &AlertProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Backend names the active backend.
func (p *AlertProcessor) Backend() string { return p.backend }

// Enabled reports whether alerts leave the process.
func (p *AlertProcessor) Enabled() bool { return p.backend != BackendNone }

// Process sends a single alert to the configured backend.
func (p *AlertProcessor) Process(ctx context.Context, a *models.Alert) error {
	if a == nil {
		return fmt.Errorf("alert is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case BackendKafka:
		err = p.pub.Publish(ctx, a)
	case BackendClickHouse:
		err = p.store.Store(ctx, a)
	case BackendNone:
		return nil
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("alert_process")
		return fmt.Errorf("process alert: %w", err)
	}

	p.metrics.RecordAlertSent(p.backend, a.Geo)
	p.metrics.RecordLatency("alert_process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch sends multiple alerts in one call and returns how many left
// the process. The none backend delivers nothing.
func (p *AlertProcessor) ProcessBatch(ctx context.Context, alerts []*models.Alert) (int, error) {
	if len(alerts) == 0 {
		return 0, nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case BackendKafka:
		err = p.pub.PublishBatch(ctx, alerts)
	case BackendClickHouse:
		err = p.store.StoreBatch(ctx, alerts)
	case BackendNone:
		return 0, nil
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("alert_process_batch")
		return 0, fmt.Errorf("process batch: %w", err)
	}

	for _, a := range alerts {
		p.metrics.RecordAlertSent(p.backend, a.Geo)
	}
	p.metrics.RecordLatency("alert_process_batch", time.Since(start).Seconds())
	return len(alerts), nil
}

// Recent lists stored alerts, newest first. Only the ClickHouse backend
// keeps alerts queryable.
func (p *AlertProcessor) Recent(ctx context.Context, limit int, geo string) ([]*models.Alert, error) {
	if p.backend != BackendClickHouse || p.store == nil {
		return nil, ErrAlertsDisabled
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	alerts, err := p.store.Recent(ctx, limit, geo)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	return alerts, nil
}

// Close closes underlying resources if available.
func (p *AlertProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
