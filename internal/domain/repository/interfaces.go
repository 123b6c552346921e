package repository

import (
	"context"

	"CloudLab/internal/domain/models"
)

// AlertPublisher streams SOC alerts to a message broker.
type AlertPublisher interface {
	Publish(ctx context.Context, a *models.Alert) error
	PublishBatch(ctx context.Context, alerts []*models.Alert) error
	Close() error
}

// AlertStorage persists SOC alerts and serves the most recent ones.
type AlertStorage interface {
	Init(ctx context.Context) error // ensure tables
	Store(ctx context.Context, a *models.Alert) error
	StoreBatch(ctx context.Context, alerts []*models.Alert) error
	Recent(ctx context.Context, limit int, geo string) ([]*models.Alert, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordFetch(source string, ok bool)
	RecordCache(endpoint string, hit bool)
	RecordAlertSent(backend, geo string)
	RecordError(kind string)
	RecordLastPrice(asset, currency string, price float64)
	RecordLatency(op string, seconds float64)
	RecordAnomalyRatio(lab string, ratio float64)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, bool)                {}
func (NopMetrics) RecordCache(string, bool)                {}
func (NopMetrics) RecordAlertSent(string, string)          {}
func (NopMetrics) RecordError(string)                      {}
func (NopMetrics) RecordLastPrice(string, string, float64) {}
func (NopMetrics) RecordLatency(string, float64)           {}
func (NopMetrics) RecordAnomalyRatio(string, float64)      {}
