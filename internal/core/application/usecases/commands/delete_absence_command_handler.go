package commands

import (
	"context"
)

type DeleteAbsenceCommandHandler struct {
	uowFactory AbsenceUoWFactory
}

func NewDeleteAbsenceCommandHandler(uowFactory AbsenceUoWFactory) DeleteAbsenceCommandHandler {
	return DeleteAbsenceCommandHandler{uowFactory: uowFactory}
}

// Handle removes the window. Only its owner may delete it.
func (h *DeleteAbsenceCommandHandler) Handle(ctx context.Context, cmd DeleteAbsenceCommand) error {
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

	absences := uow.AbsenceRepository()
	absence, err := absences.Get(ctx, cmd.AbsenceID())
	if err != nil {
		return err
	}
	if err = absence.EnsureOwnedBy(cmd.DriverID()); err != nil {
		return err
	}
	if err = absences.Delete(ctx, absence.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
