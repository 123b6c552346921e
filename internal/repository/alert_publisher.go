package repository

import (
	"context"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/domain/repository"
	pkgkafka "CloudLab/pkg/kafka"
)

// producer is the part of *pkgkafka.Producer the publisher uses.
type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// KafkaAlertPublisher implements AlertPublisher for Kafka. Alerts are keyed
// by geo so one region's alerts stay ordered on a partition.
type KafkaAlertPublisher struct {
	producer producer
	topic    string
}

// NewKafkaAlertPublisher creates Kafka publisher.
func NewKafkaAlertPublisher(p *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return newKafkaAlertPublisher(p, topic)
}

func newKafkaAlertPublisher(p producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: p, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, a *models.Alert) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Geo), a)
}

func (p *KafkaAlertPublisher) PublishBatch(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(alerts))
	for _, a := range alerts {
		if a == nil {
			continue
		}
		msgs = append(msgs, pkgkafka.Message{Key: []byte(a.Geo), Value: a})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
