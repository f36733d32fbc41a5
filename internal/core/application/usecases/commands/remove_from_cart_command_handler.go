package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
)

type RemoveFromCartCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRemoveFromCartCommandHandler(uowFactory OrderUoWFactory) RemoveFromCartCommandHandler {
	return RemoveFromCartCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveFromCartCommandHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) (*order.Order, error) {
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

	orders := uow.OrderRepository()
	cart, err := orders.GetCart(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}
	if err = cart.RemoveItem(cmd.ServiceCode()); err != nil {
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
