// Package rabbitmq publishes order status events to a fanout exchange.
package rabbitmq

import (
	"context"
	"fmt"

	"foodorder/internal/adapters/out/events"
	"foodorder/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Connection opens channels.
type Connection interface {
	Channel() (Channel, error)
	Close() error
}

type amqpConnection struct {
	conn *amqp.Connection
}

// Dial connects to the broker at url.
func Dial(url string) (Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return &amqpConnection{conn: conn}, nil
}

func (c *amqpConnection) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *amqpConnection) Close() error {
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}

// Publisher sends each event to a durable fanout exchange.
type Publisher struct {
	conn     Connection
	exchange string
}

// NewPublisher creates a publisher for exchange over conn.
func NewPublisher(conn Connection, exchange string) *Publisher {
	return &Publisher{conn: conn, exchange: exchange}
}

// Publish declares the exchange on a fresh channel and sends each event as a
// persistent JSON message whose MessageId is the order ID.
func (p *Publisher) Publish(ctx context.Context, evs ...order.DomainEvent) error {
	if len(evs) == 0 {
		return nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	for _, ev := range evs {
		key, body, err := events.Encode(ev)
		if err != nil {
			return err
		}

		err = ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    string(key),
			Type:         ev.EventName(),
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("failed to publish message: %w", err)
		}
	}

	return nil
}

// Close closes the connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
