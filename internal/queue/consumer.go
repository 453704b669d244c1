package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const ticketQueueName = "support.tickets"

// AnalyticsStore is the slice of the business repository the consumer
// needs: applying one ticket event to a tenant's counters.
type AnalyticsStore interface {
	ApplyTicketEvent(ctx context.Context, businessID string, resolved bool, responseSecs, satisfaction float64) error
}

// StartTicketConsumer connects to RabbitMQ, declares the support.tickets
// queue (durable) and consumes ticket events, updating business analytics
// for each one. It runs a reconnect loop with exponential backoff and never
// returns under normal operation; processing errors are logged and the
// offending message is rejected without requeue so a poison message cannot
// wedge the consumer.
func StartTicketConsumer(log *zap.SugaredLogger, url string, store AnalyticsStore) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warnw("ticket-consumer: failed to dial broker", "error", err, "retry_in", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(log, conn, store); err != nil {
			log.Warnw("ticket-consumer: consume loop ended, reconnecting", "error", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(log *zap.SugaredLogger, conn *amqp.Connection, store AnalyticsStore) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warnw("ticket-consumer: set QoS failed", "error", err)
	}

	if _, err := ch.QueueDeclare(ticketQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ticketQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleTicketMessage(d.Body, store); err != nil {
			log.Warnw("ticket-consumer: handle message failed", "error", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleTicketMessage(body []byte, store AnalyticsStore) error {
	var ev TicketEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BusinessID == "" {
		return errors.New("missing business_id")
	}
	switch ev.Type {
	case TicketOpened, TicketResolved:
	default:
		return fmt.Errorf("unknown ticket event type %q", ev.Type)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return store.ApplyTicketEvent(ctx, ev.BusinessID, ev.Type == TicketResolved, ev.ResponseTimeSecs, ev.Satisfaction)
}
