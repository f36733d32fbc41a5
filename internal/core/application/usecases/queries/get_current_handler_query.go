package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetCurrentHandlerQueryIsNotConstructed = errors.New(
	"GetCurrentHandlerQuery must be created via NewGetCurrentHandlerQuery constructor",
)

// GetCurrentHandlerQuery answers who is working on an order right now.
type GetCurrentHandlerQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCurrentHandlerQuery(orderID kernel.UUID) (GetCurrentHandlerQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetCurrentHandlerQuery{}, err
	}
	return GetCurrentHandlerQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCurrentHandlerQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentHandlerQueryIsNotConstructed)
}

// Handler sources.
const (
	HandlerFromAssignment = "assignment"
	HandlerFromHistory    = "history"
)

// GetCurrentHandlerQueryResponse names the actor holding the order. HandlerID is nil
// when nobody does, for example a PENDING order waiting in the queue.
type GetCurrentHandlerQueryResponse struct {
	OrderID   kernel.UUID
	Status    string
	Phase     string
	HandlerID *kernel.UUID
	Since     time.Time
	Source    string
}
