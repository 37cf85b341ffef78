package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"comanda/internal/logger"
)

// EventsExchange is the fanout exchange all change notifications go through.
// Every connected real-time client binds its own queue to it.
const EventsExchange = "comanda.events"

// Connection wraps the RabbitMQ connection with reconnection logic.
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *logger.Logger
	url     string
}

// New establishes the initial RabbitMQ connection and declares the
// broadcast topology.
func New(url string, log *logger.Logger) (*Connection, error) {
	conn := &Connection{
		logger: log,
		url:    url,
	}

	if err := conn.connect(); err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}

	return conn, nil
}

// connect dials RabbitMQ with retry logic.
func (c *Connection) connect() error {
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		c.conn, err = amqp091.Dial(c.url)
		if err == nil {
			c.channel, err = c.conn.Channel()
			if err == nil {
				if setupErr := c.setupTopology(); setupErr != nil {
					c.logger.Error("rabbitmq_setup_failed", "startup", "Failed to set up topology", setupErr, nil)
					c.close()
					err = setupErr
				} else {
					return nil
				}
			} else {
				c.conn.Close()
			}
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			c.logger.Error("rabbitmq_connection_failed",
				"startup",
				fmt.Sprintf("Failed to connect to RabbitMQ, retrying in %v", waitTime),
				err, nil)
			time.Sleep(waitTime)
		}
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// setupTopology declares the events fanout exchange.
func (c *Connection) setupTopology() error {
	err := c.channel.ExchangeDeclare(
		EventsExchange, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", EventsExchange, err)
	}

	return nil
}

// Channel returns the current channel.
func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

// Close closes the connection.
func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsClosed checks if the connection is closed.
func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

// Reconnect attempts to reconnect to RabbitMQ.
func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}
