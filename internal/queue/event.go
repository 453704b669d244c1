// Package queue defines the message payloads exchanged over the broker and
// the background consumer that folds support-ticket events into per-tenant
// analytics.
package queue

// Ticket event types accepted on the support.tickets queue.
const (
	TicketOpened   = "opened"
	TicketResolved = "resolved"
)

// TicketEvent is published by the support surfaces (chat widget, WhatsApp
// bridge, API) whenever a ticket is opened or resolved. Resolved events
// carry the handling metrics that feed the running averages.
type TicketEvent struct {
	BusinessID       string  `json:"business_id"`
	Type             string  `json:"type"`
	ResponseTimeSecs float64 `json:"response_time_secs"`
	Satisfaction     float64 `json:"satisfaction"`
	OccurredAt       string  `json:"occurred_at"`
}

// BusinessCreatedEvent is published after a business is successfully
// created, for downstream provisioning and notification consumers.
type BusinessCreatedEvent struct {
	BusinessID string `json:"business_id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	Plan       string `json:"plan"`
	CreatedAt  string `json:"created_at"`
}
