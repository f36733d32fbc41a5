package commands

import (
	"context"
)

type PurgeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewPurgeOrderCommandHandler(uowFactory OrderUoWFactory) PurgeOrderCommandHandler {
	return PurgeOrderCommandHandler{uowFactory: uowFactory}
}

func (h *PurgeOrderCommandHandler) Handle(ctx context.Context, cmd PurgeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	if _, err := orders.GetForUpdate(ctx, cmd.OrderID()); err != nil {
		return err
	}
	if err := orders.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
