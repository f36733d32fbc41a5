package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/ports"
)

// CompleteTripCommandHandler closes the driver's assignment with success and moves
// the order to PICKEDUP or DELIVERED.
type CompleteTripCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
	photos     photoUploader
}

func NewCompleteTripCommandHandler(
	uowFactory UoWFactory,
	engine *lifecycle.Engine,
	clock ports.Clock,
	storage ports.PhotoStorage,
) CompleteTripCommandHandler {
	return CompleteTripCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		photos:     newPhotoUploader(storage),
	}
}

func (h *CompleteTripCommandHandler) Handle(ctx context.Context, cmd CompleteTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	t, err := tripOf(cmd.Phase())
	if err != nil {
		return err
	}

	return h.photos.withPhotos(ctx, cmd.Photos(), func(urls []string) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = requireStatus(o, t.underway, t.done); err != nil {
			return err
		}

		assignments := uow.AssignmentRepository()
		a, err := assignments.GetOpen(ctx, o.ID(), cmd.Phase())
		if err != nil {
			return err
		}
		if err = a.Succeed(cmd.DriverID(), h.clock.Now()); err != nil {
			return err
		}
		if err = assignments.Update(ctx, a); err != nil {
			return err
		}

		driverID := cmd.DriverID()
		if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
			OrderID: o.ID(),
			Target:  t.done,
			Actor:   &driverID,
			Notes:   cmd.Notes(),
			Photos:  urls,
		}); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
