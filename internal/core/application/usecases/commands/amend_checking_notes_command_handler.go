package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/ports"
)

type AmendCheckingNotesCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
	photos     photoUploader
}

func NewAmendCheckingNotesCommandHandler(
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	storage ports.PhotoStorage,
) AmendCheckingNotesCommandHandler {
	return AmendCheckingNotesCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		photos:     newPhotoUploader(storage),
	}
}

func (h *AmendCheckingNotesCommandHandler) Handle(ctx context.Context, cmd AmendCheckingNotesCommand) error {
	if err := cmd.Validate(); err != nil {
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

		if _, err := h.engine.AmendCheckingNotes(ctx, uow, cmd.OrderID(), cmd.StaffID(), cmd.Notes(), urls); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}
