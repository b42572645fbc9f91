// Package amqp publishes work order domain events to a RabbitMQ topic
// exchange. The routing key of every message is the event name, so consumers
// bind with patterns such as "work_order.*" or "inventory.consumed".
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Message is the JSON body of a published event.
type Message struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OrderID    int64     `json:"orderId"`
	ProcessID  *int64    `json:"processId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements ports.EventPublisher on top of an AMQP channel.
type Publisher struct {
	ch       channel
	exchange string
	logger   *slog.Logger
}

func NewPublisher(ch channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "amqp-publisher"),
	}
}

// Publish sends every event as its own persistent message. It keeps going
// after a failed message and returns the joined errors.
func (p *Publisher) Publish(ctx context.Context, events ...workorder.Event) error {
	var errs []error
	for _, e := range events {
		if err := p.publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Publisher) publish(ctx context.Context, e workorder.Event) error {
	msg := toMessage(e)
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,     // exchange
		string(e.Name), // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.OccurredAt,
			Type:         msg.Type,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Name, p.exchange, err)
	}

	p.logger.DebugContext(ctx, "published event",
		"routing_key", e.Name,
		"message_id", msg.ID,
		"order_id", msg.OrderID,
	)
	return nil
}

func toMessage(e workorder.Event) Message {
	msg := Message{
		ID:         uuid.NewString(),
		Type:       string(e.Name),
		OrderID:    e.OrderID.Int64(),
		Quantity:   e.Quantity,
		OccurredAt: e.OccurredAt,
	}
	if !e.ProcessID.IsZero() {
		pid := e.ProcessID.Int64()
		msg.ProcessID = &pid
	}
	return msg
}
