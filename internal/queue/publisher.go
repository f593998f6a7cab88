package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher announces stored contact submissions. Failures are returned so
// callers can log them; they never affect the HTTP response.
type Publisher interface {
	PublishContactSubmitted(ctx context.Context, ev ContactSubmittedEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishContactSubmitted(context.Context, ContactSubmittedEvent) error { return nil }

// DialTimeout bounds the TCP connect and AMQP handshake of a single publish.
const DialTimeout = 2 * time.Second

// AMQPPublisher publishes events to a durable RabbitMQ queue. A connection
// is dialed per message.
type AMQPPublisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	log         *slog.Logger
}

func NewAMQPPublisher(url, queue string, log *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, dialTimeout: DialTimeout, log: log}
}

// dial connects within the publisher's dial timeout, shortened to the
// deadline of ctx when that comes first.
func (p *AMQPPublisher) dial(ctx context.Context) (*amqp.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := p.dialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}
	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// PublishContactSubmitted publishes ev as a persistent JSON message routed
// to the configured queue through the default exchange. Errors are returned
// unlogged.
func (p *AMQPPublisher) PublishContactSubmitted(ctx context.Context, ev ContactSubmittedEvent) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.log.Debug("contact event published", "id", ev.ID, "queue", p.queue)
	return nil
}
