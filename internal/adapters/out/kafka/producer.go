// Package kafka publishes order status events to a Kafka topic.
package kafka

import (
	"context"
	"time"

	"foodorder/internal/adapters/out/events"
	"foodorder/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes one message per domain event, keyed by order ID.
type Producer struct {
	writer messageWriter
}

// NewProducer creates a synchronous producer that waits for all replicas.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			RequiredAcks:           kafka.RequireAll,
			Async:                  false,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func newProducerWithWriter(w messageWriter) *Producer {
	return &Producer{writer: w}
}

// Publish sends the events as one batch.
func (p *Producer) Publish(ctx context.Context, evs ...order.DomainEvent) error {
	if len(evs) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(evs))
	for _, ev := range evs {
		key, body, err := events.Encode(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   key,
			Value: body,
		})
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes pending messages and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
