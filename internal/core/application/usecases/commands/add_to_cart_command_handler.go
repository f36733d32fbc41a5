package commands

import (
	"context"
	"errors"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// AddToCartCommandHandler prices the service and adds it to the customer's INCART
// order, opening a new cart when there is none.
type AddToCartCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
	pricing    ports.PricingCalculator
}

func NewAddToCartCommandHandler(
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	clock ports.Clock,
	pricing ports.PricingCalculator,
) AddToCartCommandHandler {
	return AddToCartCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		pricing:    pricing,
	}
}

func (h *AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price, err := h.pricing.UnitPrice(ctx, cmd.ServiceCode())
	if err != nil {
		return nil, err
	}
	item, err := order.NewItem(cmd.ServiceCode(), cmd.Quantity(), price)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	cart, err := orders.GetCart(ctx, cmd.CustomerID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if cart, err = order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), h.clock.Now()); err != nil {
			return nil, err
		}
		customerID := cmd.CustomerID()
		if _, err = h.engine.Create(ctx, uow, cart, &customerID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err = cart.AddItem(item); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, cart); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}
