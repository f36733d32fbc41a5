package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

func (s *Server) GetPendingOrders(c echo.Context) error {
	rows, err := s.h.PendingOrders.Handle(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendingOrderViews(rows))
}

func (s *Server) ClaimForProcessing(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewClaimForProcessingCommand(orderID, mustActor(c).ID)
	if err != nil {
		return err
	}
	a, err := s.h.ClaimForProcessing.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignmentView(a))
}

func (s *Server) CancelProcessing(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, _, err := evidence(c, "note")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelProcessingCommand(orderID, mustActor(c).ID, form["note"])
	if err != nil {
		return err
	}
	if err = s.h.CancelProcessing.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ConfirmOrder(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, _, err := evidence(c, "notes")
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmOrderCommand(orderID, mustActor(c).ID, form["notes"])
	if err != nil {
		return err
	}
	if err = s.h.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) StartChecking(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, _, err := evidence(c, "notes")
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartCheckingCommand(orderID, mustActor(c).ID, form["notes"])
	if err != nil {
		return err
	}
	if err = s.h.StartChecking.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AmendCheckingNotes(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, photos, err := evidence(c, "notes")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAmendCheckingNotesCommand(orderID, mustActor(c).ID, form["notes"], photos)
	if err != nil {
		return err
	}
	if err = s.h.AmendCheckingNotes.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AdvanceProcessing moves an order one workshop step. The target comes in the
// "status" field, for example WASHING.
func (s *Server) AdvanceProcessing(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, photos, err := evidence(c, "status", "notes")
	if err != nil {
		return err
	}
	target, err := order.ParseStatus(form["status"])
	if err != nil {
		return err
	}
	cmd, err := commands.NewAdvanceProcessingCommand(orderID, mustActor(c).ID, target, form["notes"], photos)
	if err != nil {
		return err
	}
	if err = s.h.AdvanceProcessing.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ResolveComplaint(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, _, err := evidence(c, "notes")
	if err != nil {
		return err
	}
	cmd, err := commands.NewResolveComplaintCommand(orderID, mustActor(c).ID, form["notes"])
	if err != nil {
		return err
	}
	if err = s.h.ResolveComplaint.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
