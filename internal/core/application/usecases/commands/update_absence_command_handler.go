package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/services"
)

type UpdateAbsenceCommandHandler struct {
	uowFactory   AbsenceUoWFactory
	availability availability
}

func NewUpdateAbsenceCommandHandler(
	uowFactory AbsenceUoWFactory,
	checker services.AvailabilityChecker,
	location *time.Location,
) UpdateAbsenceCommandHandler {
	return UpdateAbsenceCommandHandler{
		uowFactory:   uowFactory,
		availability: newAvailability(checker, location),
	}
}

func (h *UpdateAbsenceCommandHandler) Handle(ctx context.Context, cmd UpdateAbsenceCommand) (*driver.Absence, error) {
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

	absences := uow.AbsenceRepository()
	absence, err := absences.Get(ctx, cmd.AbsenceID())
	if err != nil {
		return nil, err
	}
	if err = absence.EnsureOwnedBy(cmd.DriverID()); err != nil {
		return nil, err
	}

	id := absence.ID()
	window, err := h.availability.CheckAndReserve(ctx, uow, cmd.DriverID(), cmd.Date(), cmd.From(), cmd.To(), &id)
	if err != nil {
		return nil, err
	}
	if err = absence.Move(window, cmd.Reason()); err != nil {
		return nil, err
	}
	if err = absences.Update(ctx, absence); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return absence, nil
}
