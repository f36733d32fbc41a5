package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/ports"
)

// FailTripCommandHandler closes the driver's assignment as failed and moves the
// order to PICKUPFAILED or DELIVERYFAILED with the evidence attached. Photos are
// stored before the unit of work opens and deleted again if it does not commit.
type FailTripCommandHandler struct {
	uowFactory UoWFactory
	engine     *lifecycle.Engine
	clock      ports.Clock
	photos     photoUploader
}

func NewFailTripCommandHandler(
	uowFactory UoWFactory,
	engine *lifecycle.Engine,
	clock ports.Clock,
	storage ports.PhotoStorage,
) FailTripCommandHandler {
	return FailTripCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		photos:     newPhotoUploader(storage),
	}
}

func (h *FailTripCommandHandler) Handle(ctx context.Context, cmd FailTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if len(cmd.Photos()) == 0 {
		return ErrEvidenceIsRequired
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
		if err = requireStatus(o, t.underway, t.failed); err != nil {
			return err
		}

		assignments := uow.AssignmentRepository()
		a, err := assignments.GetOpen(ctx, o.ID(), cmd.Phase())
		if err != nil {
			return err
		}
		if err = a.Fail(cmd.DriverID(), cmd.Reason(), h.clock.Now()); err != nil {
			return err
		}
		if err = assignments.Update(ctx, a); err != nil {
			return err
		}

		driverID := cmd.DriverID()
		if _, err = h.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{
			OrderID: o.ID(),
			Target:  t.failed,
			Actor:   &driverID,
			Notes:   cmd.Reason(),
			IsFail:  true,
			Photos:  urls,
		}); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
