// Package lifecycle owns every write to an order's status. The orders.status column
// and the status log change together through the Engine, inside the caller's unit of
// work, and each accepted change leaves an outbox event behind.
package lifecycle

import (
	"context"
	"strings"

	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// Repositories is the part of a unit of work the engine writes through.
type Repositories interface {
	OrderRepository() ports.OrderRepository
	HistoryRepository() ports.HistoryRepository
	OutboxRepository() ports.OutboxRepository
}

// TransitionRequest asks for one status change. Photos are URLs already stored by
// ports.PhotoStorage.
type TransitionRequest struct {
	OrderID kernel.UUID
	Target  order.Status
	Actor   *kernel.UUID
	Notes   string
	IsFail  bool
	Photos  []string
}

// Outcome of a transition. Skipped is set when the order already satisfies a
// scheduling target; Entry is nil then.
type Outcome struct {
	Order   *order.Order
	Entry   *order.HistoryEntry
	Skipped bool
}

// Engine applies status transitions.
//
// Example:
//
//	out, err := engine.Transition(ctx, uow, lifecycle.TransitionRequest{
//	    OrderID: orderID,
//	    Target:  order.PickedUp,
//	    Actor:   &driverID,
//	    Photos:  urls,
//	})
type Engine struct {
	clock ports.Clock
}

func NewEngine(clock ports.Clock) *Engine {
	return &Engine{clock: clock}
}

// Create persists a new INCART order together with its first log entry.
func (e *Engine) Create(ctx context.Context, repos Repositories, o *order.Order, actor *kernel.UUID) (*order.HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.InCart {
		return nil, order.ErrOrderIsNotInCart
	}

	if err := repos.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(o.ID(), order.InCart, actor, "", false, e.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = repos.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = e.emit(ctx, repos, o, order.Unknown, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Transition locks the order and applies req.
func (e *Engine) Transition(ctx context.Context, repos Repositories, req TransitionRequest) (Outcome, error) {
	if err := req.OrderID.Validate(); err != nil {
		return Outcome{}, err
	}

	o, err := repos.OrderRepository().GetForUpdate(ctx, req.OrderID)
	if err != nil {
		return Outcome{}, err
	}
	return e.Apply(ctx, repos, o, req)
}

// Apply changes o, which the caller has already read with GetForUpdate in the same
// unit of work.
func (e *Engine) Apply(ctx context.Context, repos Repositories, o *order.Order, req TransitionRequest) (Outcome, error) {
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}
	if err := req.Target.Validate(); err != nil {
		return Outcome{}, err
	}

	if o.Status().AbsorbsScheduling(req.Target) {
		return Outcome{Order: o, Skipped: true}, nil
	}

	from := o.Status()
	if err := o.ChangeStatus(req.Target); err != nil {
		return Outcome{}, err
	}
	if err := repos.OrderRepository().Update(ctx, o); err != nil {
		return Outcome{}, err
	}

	now := e.clock.Now()
	entry, err := order.NewHistoryEntry(o.ID(), req.Target, req.Actor, strings.TrimSpace(req.Notes), req.IsFail, now)
	if err != nil {
		return Outcome{}, err
	}
	entry.AttachPhotos(req.Photos, now)
	if err = repos.HistoryRepository().Append(ctx, entry); err != nil {
		return Outcome{}, err
	}

	if err = e.emit(ctx, repos, o, from, entry); err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: o, Entry: entry}, nil
}

// AmendCheckingNotes extends the notes of the latest CHECKING entry and attaches
// photos to it. Only the staff member who started checking may amend. The
// amendment is announced as order.history_amended.
func (e *Engine) AmendCheckingNotes(
	ctx context.Context,
	repos Repositories,
	orderID, actor kernel.UUID,
	notes string,
	photos []string,
) (*order.HistoryEntry, error) {
	o, err := repos.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status() != order.Checking {
		return nil, errs.NewInvalidStateError("order", o.Status().String(), order.Checking.String())
	}

	history := repos.HistoryRepository()
	entry, err := history.LatestByStatus(ctx, orderID, order.Checking)
	if err != nil {
		return nil, err
	}
	if err = entry.AmendNotes(o.Status(), actor, notes); err != nil {
		return nil, err
	}
	if err = history.UpdateNotes(ctx, entry); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	added := entry.AttachPhotos(photos, now)
	if err = history.AddPhotos(ctx, entry.ID(), added); err != nil {
		return nil, err
	}

	ev, err := event.New(event.TopicHistoryAmended, orderID, event.HistoryAmended{
		OrderID: orderID.String(),
		EntryID: entry.ID(),
		ActorID: actor.String(),
		Photos:  len(added),
		At:      now.UTC(),
	}, now)
	if err != nil {
		return nil, err
	}
	if err = repos.OutboxRepository().Add(ctx, ev); err != nil {
		return nil, err
	}
	return entry, nil
}

// RevertScheduling removes the trailing SCHEDULED_* entries of the log and moves
// the order back to the status of the entry before them, which keeps orders.status
// equal to the latest logged status. It returns that entry.
func (e *Engine) RevertScheduling(ctx context.Context, repos Repositories, o *order.Order) (*order.HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	history := repos.HistoryRepository()
	entries, err := history.List(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	cut := len(entries)
	for cut > 0 && entries[cut-1].Status().IsScheduling() {
		cut--
	}
	if cut == len(entries) || cut == 0 {
		return nil, errs.NewInvalidStateError("order history", o.Status().String(), "reverted scheduling")
	}

	from := o.Status()
	previous := entries[cut-1]
	if err = o.RevertScheduling(previous.Status()); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(entries)-cut)
	for _, entry := range entries[cut:] {
		ids = append(ids, entry.ID())
	}
	if err = history.Delete(ctx, ids); err != nil {
		return nil, err
	}
	if err = repos.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = e.emit(ctx, repos, o, from, previous); err != nil {
		return nil, err
	}
	return previous, nil
}

func (e *Engine) emit(ctx context.Context, repos Repositories, o *order.Order, from order.Status, entry *order.HistoryEntry) error {
	payload := event.StatusChanged{
		OrderID:    o.ID().String(),
		CustomerID: o.CustomerID().String(),
		To:         o.Status().String(),
		EntryID:    entry.ID(),
		IsFail:     entry.IsFail(),
		At:         e.clock.Now().UTC(),
	}
	if from != order.Unknown {
		payload.From = from.String()
	}
	if actor := entry.UpdatedBy(); actor != nil {
		payload.ActorID = actor.String()
	}

	ev, err := event.New(event.TopicStatusChanged, o.ID(), payload, e.clock.Now())
	if err != nil {
		return err
	}
	return repos.OutboxRepository().Add(ctx, ev)
}
