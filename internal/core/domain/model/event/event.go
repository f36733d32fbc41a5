// Package event defines the notifications the service emits through its outbox.
//
// Events are written in the same unit of work as the state change they describe and
// relayed to the message bus by a job, so a rolled back transition never produces a
// notification.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
)

const (
	TopicStatusChanged  = "order.status_changed"
	TopicDriverArrived  = "order.driver_arrived"
	TopicHistoryAmended = "order.history_amended"
)

// Status of an outbox row.
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusDone    Status = "DONE"
	StatusFailed  Status = "FAILED"
)

// Event is one outbox row.
type Event struct {
	ID          kernel.UUID
	Topic       string
	Key         string
	Payload     json.RawMessage
	Status      Status
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// StatusChanged is published after every accepted order transition.
type StatusChanged struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	EntryID    uint64    `json:"entry_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	IsFail     bool      `json:"is_fail"`
	At         time.Time `json:"at"`
}

// DriverArrived tells the customer the driver is at the door.
type DriverArrived struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	DriverID   string    `json:"driver_id"`
	Phase      string    `json:"phase"`
	At         time.Time `json:"at"`
}

// HistoryAmended marks notes or photos added to an existing log entry.
type HistoryAmended struct {
	OrderID string    `json:"order_id"`
	EntryID uint64    `json:"entry_id"`
	ActorID string    `json:"actor_id"`
	Photos  int       `json:"photos"`
	At      time.Time `json:"at"`
}

// New builds a CREATED outbox event keyed by order id.
func New(topic string, orderID kernel.UUID, payload any, now time.Time) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	return Event{
		ID:        kernel.NewUUID(),
		Topic:     topic,
		Key:       orderID.String(),
		Payload:   raw,
		Status:    StatusCreated,
		CreatedAt: now.UTC(),
	}, nil
}
