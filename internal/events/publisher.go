package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cym-store/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventsExchange = "cym.events"
	publishTimeout = 3 * time.Second
)

// Publisher announces domain events to other systems. Implementations must
// not block checkout for long; callers treat failures as non-fatal.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch Channel
}

// NewRabbitPublisher declares the topic exchange so a publish never fails on
// missing infrastructure.
func NewRabbitPublisher(ch Channel) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &RabbitPublisher{ch: ch}, nil
}

// Dial connects to the broker and returns a publisher plus a function that
// closes both the channel and the connection.
func Dial(url string) (*RabbitPublisher, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewRabbitPublisher(ch)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}
	return p, closeFn, nil
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	env := NewEnvelope(OrderPlacedEvent, OrderPlacedVersion, ev.OrderID, ev)
	env.RequestID = logger.RequestIDFrom(ctx)

	return p.publish(ctx, RoutingKey(OrderPlacedEvent, OrderPlacedVersion), env.EventID, env)
}

func (p *RabbitPublisher) publish(ctx context.Context, routingKey, messageID string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx, EventsExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	logger.FromCtx(ctx).Debug("event published",
		zap.String("layer", "events"),
		zap.String("routing_key", routingKey),
		zap.String("message_id", messageID),
	)
	return nil
}
