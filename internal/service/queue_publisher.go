// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/aidesk/saas-backend/internal/queue"
)

const businessCreatedQueue = "business.created"

// Publisher publishes events over short-lived connections. Dialing per
// publish keeps the happy path free of connection state to babysit; the
// event volume here is one message per business creation.
type Publisher struct {
	URL string
	Log *zap.SugaredLogger
}

func New(url string, log *zap.SugaredLogger) *Publisher {
	return &Publisher{URL: url, Log: log}
}

// BusinessCreated publishes a BusinessCreatedEvent to the business.created
// queue. Messages are marked persistent so they survive broker restarts.
func (p *Publisher) BusinessCreated(ctx context.Context, event queue.BusinessCreatedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warnw("rabbitmq: dial failed", "error", err)
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warnw("rabbitmq: channel open failed", "error", err)
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(businessCreatedQueue, true, false, false, false, nil); err != nil {
		p.Log.Warnw("rabbitmq: queue declare failed", "error", err)
		return fmt.Errorf("queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		businessCreatedQueue, // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		p.Log.Warnw("rabbitmq: publish failed", "error", err)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
