package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// EventBus publishes recommendation lifecycle events (impressions and
// feedback) for downstream analytics consumers. Publishing is best-effort:
// a broker outage never blocks or fails a recommendation response.
type EventBus struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewEventBus(cfg *config.Config, logger *logrus.Logger) *EventBus {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topics.RecommendationEvents,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &EventBus{writer: writer, logger: logger}
}

// Publish sends one event keyed by request id so a request's events land in
// order on one partition.
func (b *EventBus) Publish(ctx context.Context, event *models.RecommendationEvent) error {
	if b.writer == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal recommendation event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RequestID.String()),
		Value: payload,
	}

	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish recommendation event: %w", err)
	}
	return nil
}

// PublishAsync fires Publish on a goroutine and only logs failures.
func (b *EventBus) PublishAsync(event *models.RecommendationEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Publish(ctx, event); err != nil {
			b.logger.WithError(err).Warn("Failed to publish recommendation event")
		}
	}()
}

func (b *EventBus) Close() error {
	if b.writer == nil {
		return nil
	}
	return b.writer.Close()
}
