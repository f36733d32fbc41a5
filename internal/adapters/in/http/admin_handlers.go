package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type AssignDriverRequest struct {
	DriverID string   `json:"driver_id" validate:"required,uuid"`
	OrderIDs []string `json:"order_ids" validate:"required,min=1,max=100,dive,uuid"`
}

// AssignDriver bulk-assigns orders to one driver for the phase in the path. The
// response lists the outcome per order; rejected orders do not fail the request.
func (s *Server) AssignDriver(c echo.Context) error {
	phase, err := driverPhaseParam(c)
	if err != nil {
		return err
	}
	var req AssignDriverRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return err
	}
	orderIDs, err := kernel.UUIDsFromStrings(req.OrderIDs)
	if err != nil {
		return err
	}

	adminID := mustActor(c).ID
	var cmd commands.AssignDriverCommand
	if phase == assignment.Pickup {
		cmd, err = commands.NewAssignPickupCommand(orderIDs, driverID, adminID)
	} else {
		cmd, err = commands.NewAssignDeliveryCommand(orderIDs, driverID, adminID)
	}
	if err != nil {
		return err
	}

	results, err := s.h.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignResultViews(results))
}

type CancelAssignmentsRequest struct {
	AssignmentIDs []string `json:"assignment_ids" validate:"required,min=1,max=100,dive,uuid"`
}

func (s *Server) CancelAssignments(c echo.Context) error {
	var req CancelAssignmentsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ids, err := kernel.UUIDsFromStrings(req.AssignmentIDs)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelAssignmentCommand(ids, mustActor(c).ID)
	if err != nil {
		return err
	}
	if err = s.h.CancelAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) PurgeOrder(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewPurgeOrderCommand(orderID, mustActor(c).ID)
	if err != nil {
		return err
	}
	if err = s.h.PurgeOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
