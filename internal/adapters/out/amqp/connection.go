package amqp

import (
	"fmt"
	"log/slog"

	"github.com/rabbitmq/amqp091-go"
)

// Connection owns the broker connection and the channel the publisher writes to.
type Connection struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to RabbitMQ and declares the durable topic exchange events
// are published to.
func Dial(url, exchange string, logger *slog.Logger) (*Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	logger.Info("connected to RabbitMQ", "exchange", exchange)
	return &Connection{conn: conn, channel: ch, exchange: exchange, logger: logger}, nil
}

// Publisher returns an event publisher bound to the connection's channel.
func (c *Connection) Publisher() *Publisher {
	return NewPublisher(c.channel, c.exchange, c.logger)
}

// Close closes the channel and then the connection.
func (c *Connection) Close() error {
	if err := c.channel.Close(); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}
