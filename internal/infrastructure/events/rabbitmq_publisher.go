// Package events publishes notification-worthy domain events to RabbitMQ.
// Delivery is fire-and-forget: downstream notification workers consume the
// exchange, and a broker outage never fails the operation that produced
// the event.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"renomarket/internal/usecase/interfaces"

	"github.com/rabbitmq/amqp091-go"
)

// EventProducer publishes events on a durable topic exchange.
type EventProducer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

var _ interfaces.IEventPublisher = (*EventProducer)(nil)

// NoopPublisher is the fallback used when RabbitMQ is unavailable at
// startup; publishes are logged and dropped.
type NoopPublisher struct{}

var _ interfaces.IEventPublisher = (*NoopPublisher)(nil)

func (p *NoopPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	log.Printf("[events][publisher] fallback mode, publish skipped routing_key=%s", routingKey)
	return nil
}

func (p *NoopPublisher) Close() {}

// NewEventProducer connects to RabbitMQ with a bounded dial timeout so
// startup does not hang on a missing broker.
func NewEventProducer(amqpURL, exchange string) (*EventProducer, error) {
	conn, err := amqp091.DialConfig(amqpURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &EventProducer{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *EventProducer) Publish(ctx context.Context, routingKey string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
	if err != nil {
		return err
	}
	log.Printf("[events][publisher] published routing_key=%s bytes=%d", routingKey, len(payload))
	return nil
}

func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
