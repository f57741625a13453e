// Package events publishes domain events so other systems can react to
// changes without polling the API.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Routing keys.
const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
	BillPaid           = "bill.paid"
	GoalContributed    = "goal.contributed"
)

// Event is one domain change. Type doubles as the routing key.
type Event struct {
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id"`
	ResourceID string                 `json:"resource_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// New builds an event stamped with the current UTC time.
func New(eventType, userID, resourceID string, data map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Marshal encodes the event body.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
