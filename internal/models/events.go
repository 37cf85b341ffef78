package models

import "time"

// Broadcast event names pushed to connected real-time clients.
const (
	EventOrderCreated   = "orders@new"
	EventOrderChecked   = "order@checked"
	EventOrderDeleted   = "order@deleted"
	EventProductCreated = "products@new"
	EventProductDeleted = "products@deleted"
)

// Event is the envelope published on the broadcast channel.
type Event struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
