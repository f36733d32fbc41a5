package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

type AddAbsenceCommandHandler struct {
	uowFactory   AbsenceUoWFactory
	availability availability
	clock        ports.Clock
}

func NewAddAbsenceCommandHandler(
	uowFactory AbsenceUoWFactory,
	checker services.AvailabilityChecker,
	location *time.Location,
	clock ports.Clock,
) AddAbsenceCommandHandler {
	return AddAbsenceCommandHandler{
		uowFactory:   uowFactory,
		availability: newAvailability(checker, location),
		clock:        clock,
	}
}

func (h *AddAbsenceCommandHandler) Handle(ctx context.Context, cmd AddAbsenceCommand) (*driver.Absence, error) {
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

	window, err := h.availability.CheckAndReserve(ctx, uow, cmd.DriverID(), cmd.Date(), cmd.From(), cmd.To(), nil)
	if err != nil {
		return nil, err
	}

	absence, err := driver.NewAbsence(cmd.DriverID(), window, cmd.Reason(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = uow.AbsenceRepository().Add(ctx, absence); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return absence, nil
}
