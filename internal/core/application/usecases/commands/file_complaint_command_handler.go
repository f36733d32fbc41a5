package commands

import (
	"context"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

type FileComplaintCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     *lifecycle.Engine
	photos     photoUploader
}

func NewFileComplaintCommandHandler(
	uowFactory OrderUoWFactory,
	engine *lifecycle.Engine,
	storage ports.PhotoStorage,
) FileComplaintCommandHandler {
	return FileComplaintCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		photos:     newPhotoUploader(storage),
	}
}

func (h *FileComplaintCommandHandler) Handle(ctx context.Context, cmd FileComplaintCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customerID := cmd.CustomerID()
	return h.photos.withPhotos(ctx, cmd.Photos(), func(urls []string) error {
		_, err := transitionOrder(ctx, h.uowFactory, h.engine, lifecycle.TransitionRequest{
			OrderID: cmd.OrderID(),
			Target:  order.Complaint,
			Actor:   &customerID,
			Notes:   cmd.Notes(),
			IsFail:  true,
			Photos:  urls,
		}, func(o *order.Order) error {
			if !o.IsOwnedBy(customerID) {
				return errs.NewForbiddenError(customerID.String(), "order "+o.ID().String())
			}
			return nil
		})
		return err
	})
}
