package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/ports"
)

type AdvanceProcessingCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
	photos     photoUploader
}

func NewAdvanceProcessingCommandHandler(
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	storage ports.PhotoStorage,
) AdvanceProcessingCommandHandler {
	return AdvanceProcessingCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		photos:     newPhotoUploader(storage),
	}
}

func (h *AdvanceProcessingCommandHandler) Handle(ctx context.Context, cmd AdvanceProcessingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	staffID := cmd.StaffID()
	return h.photos.withPhotos(ctx, cmd.Photos(), func(urls []string) error {
		_, err := transitionOrder(ctx, h.uowFactory, h.engine, lifecycle.TransitionRequest{
			OrderID: cmd.OrderID(),
			Target:  cmd.Target(),
			Actor:   &staffID,
			Notes:   cmd.Notes(),
			Photos:  urls,
		}, nil)
		return err
	})
}
