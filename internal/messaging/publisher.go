package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"comanda/internal/logger"
	"comanda/internal/models"
)

// Broadcaster is the publish side of the real-time channel. It is
// fire-and-forget: nothing is returned and no failure reaches the caller.
type Broadcaster interface {
	Publish(ctx context.Context, event string, payload any)
}

// Publisher broadcasts change events to every connected client via the
// events fanout exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new event publisher.
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// Publish emits a named event carrying the payload. Delivery is best-effort:
// persistence of the triggering mutation never depends on it, so failures
// are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			p.logger.Error("broadcast_failed", "", fmt.Sprintf("Failed to reconnect before publishing %s", event), err, nil)
			return
		}
	}

	body, err := json.Marshal(models.Event{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("broadcast_failed", "", fmt.Sprintf("Failed to marshal %s event", event), err, nil)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		EventsExchange, // exchange
		"",             // routing key (ignored for fanout)
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("broadcast_failed", "", fmt.Sprintf("Failed to publish %s event", event), err, map[string]any{
			"exchange": EventsExchange,
		})
		return
	}

	p.logger.Debug("broadcast_published", "", fmt.Sprintf("Published %s event", event), map[string]any{
		"exchange":     EventsExchange,
		"message_size": len(body),
	})
}
