package http

import (
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetDriverAssignments lists the caller's open trips. With lat and lng query
// parameters the stops come back in route order from that point.
func (s *Server) GetDriverAssignments(c echo.Context) error {
	lat, err := floatQuery(c, "lat")
	if err != nil {
		return err
	}
	lng, err := floatQuery(c, "lng")
	if err != nil {
		return err
	}

	var from *kernel.GeoPoint
	switch {
	case lat != nil && lng != nil:
		p, pointErr := kernel.NewGeoPoint(*lat, *lng)
		if pointErr != nil {
			return pointErr
		}
		from = &p
	case lat != nil || lng != nil:
		return errs.NewValueIsRequiredError("lat and lng")
	}

	q, err := queries.NewGetDriverAssignmentsQuery(mustActor(c).ID, from)
	if err != nil {
		return err
	}
	res, err := s.h.DriverRoute.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, driverRouteView(res))
}

type tripTarget struct {
	orderID  kernel.UUID
	driverID kernel.UUID
	phase    assignment.Phase
}

func parseTrip(c echo.Context) (tripTarget, error) {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return tripTarget{}, err
	}
	phase, err := driverPhaseParam(c)
	if err != nil {
		return tripTarget{}, err
	}
	return tripTarget{orderID: orderID, driverID: mustActor(c).ID, phase: phase}, nil
}

func (s *Server) StartTrip(c echo.Context) error {
	t, err := parseTrip(c)
	if err != nil {
		return err
	}
	var cmd commands.StartTripCommand
	if t.phase == assignment.Pickup {
		cmd, err = commands.NewStartPickupCommand(t.orderID, t.driverID)
	} else {
		cmd, err = commands.NewStartDeliveryCommand(t.orderID, t.driverID)
	}
	if err != nil {
		return err
	}
	if err = s.h.StartTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ConfirmArrival(c echo.Context) error {
	t, err := parseTrip(c)
	if err != nil {
		return err
	}
	var cmd commands.ConfirmArrivalCommand
	if t.phase == assignment.Pickup {
		cmd, err = commands.NewConfirmPickupArrivalCommand(t.orderID, t.driverID)
	} else {
		cmd, err = commands.NewConfirmDeliveryArrivalCommand(t.orderID, t.driverID)
	}
	if err != nil {
		return err
	}
	if err = s.h.ConfirmArrival.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTrip accepts multipart/form-data with "notes" and "photos".
func (s *Server) CompleteTrip(c echo.Context) error {
	t, err := parseTrip(c)
	if err != nil {
		return err
	}
	form, photos, err := evidence(c, "notes")
	if err != nil {
		return err
	}
	var cmd commands.CompleteTripCommand
	if t.phase == assignment.Pickup {
		cmd, err = commands.NewConfirmPickupCommand(t.orderID, t.driverID, form["notes"], photos)
	} else {
		cmd, err = commands.NewConfirmDeliveryCommand(t.orderID, t.driverID, form["notes"], photos)
	}
	if err != nil {
		return err
	}
	if err = s.h.CompleteTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// FailTrip accepts multipart/form-data with "reason" and "photos".
func (s *Server) FailTrip(c echo.Context) error {
	t, err := parseTrip(c)
	if err != nil {
		return err
	}
	form, photos, err := evidence(c, "reason")
	if err != nil {
		return err
	}
	var cmd commands.FailTripCommand
	if t.phase == assignment.Pickup {
		cmd, err = commands.NewCancelPickupAssignmentCommand(t.orderID, t.driverID, form["reason"], photos)
	} else {
		cmd, err = commands.NewCancelDeliveryAssignmentCommand(t.orderID, t.driverID, form["reason"], photos)
	}
	if err != nil {
		return err
	}
	if err = s.h.FailTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDriverAbsences lists absences ending after "since" (RFC 3339), default now.
func (s *Server) GetDriverAbsences(c echo.Context) error {
	since := s.clock.Now()
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("since", err)
		}
		since = parsed
	}

	q, err := queries.NewGetDriverAbsencesQuery(mustActor(c).ID, since)
	if err != nil {
		return err
	}
	rows, err := s.h.DriverAbsences.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	out := make([]AbsenceView, 0, len(rows))
	for _, r := range rows {
		out = append(out, AbsenceView{ID: r.ID.String(), StartsAt: r.StartsAt, EndsAt: r.EndsAt, Reason: r.Reason})
	}
	return c.JSON(http.StatusOK, out)
}

// AbsenceRequest describes a window on one business day, e.g. 2024-05-01 from
// 09:00 to 13:00.
type AbsenceRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	From   string `json:"from" validate:"required,datetime=15:04"`
	To     string `json:"to" validate:"required,datetime=15:04"`
	Reason string `json:"reason" validate:"max=500"`
}

func (s *Server) AddAbsence(c echo.Context) error {
	var req AbsenceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewAddAbsenceCommand(mustActor(c).ID, req.Date, req.From, req.To, req.Reason)
	if err != nil {
		return err
	}
	a, err := s.h.AddAbsence.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, absenceView(a))
}

func (s *Server) UpdateAbsence(c echo.Context) error {
	absenceID, err := uuidParam(c, "absenceId")
	if err != nil {
		return err
	}
	var req AbsenceRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateAbsenceCommand(absenceID, mustActor(c).ID, req.Date, req.From, req.To, req.Reason)
	if err != nil {
		return err
	}
	a, err := s.h.UpdateAbsence.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, absenceView(a))
}

func (s *Server) DeleteAbsence(c echo.Context) error {
	absenceID, err := uuidParam(c, "absenceId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteAbsenceCommand(absenceID, mustActor(c).ID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteAbsence.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
