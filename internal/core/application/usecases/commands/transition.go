package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
)

// transitionOrder locks the order, runs check against it and applies req, all in
// one order unit of work. check may be nil.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	req lifecycle.TransitionRequest,
	check func(o *order.Order) error,
) (lifecycle.Outcome, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return lifecycle.Outcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, req.OrderID)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if check != nil {
		if err = check(o); err != nil {
			return lifecycle.Outcome{}, err
		}
	}

	out, err := engine.Apply(ctx, uow, o, req)
	if err != nil {
		return lifecycle.Outcome{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return lifecycle.Outcome{}, err
	}
	return out, nil
}
