package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type AddToCartRequest struct {
	ServiceCode string `json:"service_code" validate:"required,max=64"`
	Quantity    int    `json:"quantity" validate:"required,gt=0,lte=1000"`
}

func (s *Server) AddToCart(c echo.Context) error {
	var req AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddToCartCommand(mustActor(c).ID, req.ServiceCode, req.Quantity)
	if err != nil {
		return err
	}
	o, err := s.h.AddToCart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderView(o))
}

func (s *Server) RemoveFromCart(c echo.Context) error {
	cmd, err := commands.NewRemoveFromCartCommand(mustActor(c).ID, c.Param("serviceCode"))
	if err != nil {
		return err
	}
	o, err := s.h.RemoveFromCart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderView(o))
}

type PlaceOrderRequest struct {
	PickupAddress   AddressBody `json:"pickup_address" validate:"required"`
	DeliveryAddress AddressBody `json:"delivery_address" validate:"required"`
	Emergency       bool        `json:"emergency"`
}

func (s *Server) PlaceOrder(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	var req PlaceOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	pickup, err := req.PickupAddress.toDomain()
	if err != nil {
		return err
	}
	delivery, err := req.DeliveryAddress.toDomain()
	if err != nil {
		return err
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, mustActor(c).ID, pickup, delivery, req.Emergency)
	if err != nil {
		return err
	}
	o, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderView(o))
}

// FileComplaint accepts multipart/form-data with "notes" and "photos".
func (s *Server) FileComplaint(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	form, photos, err := evidence(c, "notes")
	if err != nil {
		return err
	}

	cmd, err := commands.NewFileComplaintCommand(orderID, mustActor(c).ID, form["notes"], photos)
	if err != nil {
		return err
	}
	if err = s.h.FileComplaint.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// CancelOrder serves customers cancelling their own order and staff cancelling
// any cancellable order.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	var req CancelOrderRequest
	if c.Request().ContentLength != 0 {
		if err = bindAndValidate(c, &req); err != nil {
			return err
		}
	}

	actor := mustActor(c)
	cmd, err := commands.NewCancelOrderCommand(orderID, actor.ID, actor.Role == RoleCustomer, req.Reason)
	if err != nil {
		return err
	}
	if err = s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteOrder(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}

	actor := mustActor(c)
	cmd, err := commands.NewCompleteOrderCommand(orderID, actor.ID, actor.Role == RoleCustomer)
	if err != nil {
		return err
	}
	if err = s.h.CompleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetOrderHistory(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	q, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return err
	}
	res, err := s.h.OrderHistory.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) GetCurrentHandler(c echo.Context) error {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}
	q, err := queries.NewGetCurrentHandlerQuery(orderID)
	if err != nil {
		return err
	}
	res, err := s.h.CurrentHandler.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, currentHandlerView(res))
}
