package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// PlaceOrderCommandHandler quotes the cart, stores the addresses and moves the order
// to PENDING, where staff can claim it.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
	pricing    ports.PricingCalculator
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	clock ports.Clock,
	pricing ports.PricingCalculator,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		pricing:    pricing,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(cmd.CustomerID()) {
		return nil, errs.NewForbiddenError(cmd.CustomerID().String(), "order "+o.ID().String())
	}
	if err = o.Status().ValidateTransition(order.Pending); err != nil {
		return nil, err
	}

	quote, err := h.pricing.Quote(ctx, ports.PriceRequest{
		Items:     o.Items(),
		Pickup:    cmd.Pickup(),
		Delivery:  cmd.Delivery(),
		Emergency: cmd.Emergency(),
	})
	if err != nil {
		return nil, err
	}
	if err = o.Place(cmd.Pickup(), cmd.Delivery(), cmd.Emergency(), quote, h.clock.Now()); err != nil {
		return nil, err
	}

	customerID := cmd.CustomerID()
	if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
		OrderID: o.ID(),
		Target:  order.Pending,
		Actor:   &customerID,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
