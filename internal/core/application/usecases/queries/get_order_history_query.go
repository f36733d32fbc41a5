package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery reads the status timeline of one order.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderHistoryQueryResponse is the rendered timeline. It is what the cache
// stores, so every field is tagged.
type GetOrderHistoryQueryResponse struct {
	OrderID string             `json:"order_id"`
	Status  string             `json:"status"`
	Entries []HistoryEntryView `json:"entries"`
}

type HistoryEntryView struct {
	ID          uint64    `json:"id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	IsFail      bool      `json:"is_fail"`
	CreatedAt   time.Time `json:"created_at"`
	Photos      []string  `json:"photos"`
}
