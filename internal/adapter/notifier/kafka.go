// Package notifier publishes booking events once a booking is persisted.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

const (
	EventBookingCreated = "booking.created"

	headerEventType = "event-type"
	headerSource    = "source"
	sourceName      = "railway-reservation"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier writes one message per booking, keyed by PNR so events for
// the same booking land on the same partition.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

func NewKafkaNotifier(brokers []string, topic string, log *logger.Logger) (*KafkaNotifier, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("component", "kafka_notifier")

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	}

	return &KafkaNotifier{writer: writer, topic: topic}, nil
}

func (n *KafkaNotifier) BookingCreated(ctx context.Context, event domain.BookingEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode booking event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.PNR),
		Value: value,
		Time:  event.BookedAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(EventBookingCreated)},
			{Key: headerSource, Value: []byte(sourceName)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", EventBookingCreated, n.topic, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
