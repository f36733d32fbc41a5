package http

import (
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

type AddressBody struct {
	Street string  `json:"street" validate:"required,max=255"`
	Lat    float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng    float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (a AddressBody) toDomain() (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(a.Lat, a.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(a.Street, point)
}

type AddressView struct {
	Street string  `json:"street"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

func addressView(a *kernel.Address) *AddressView {
	if a == nil {
		return nil
	}
	return &AddressView{Street: a.Street(), Lat: a.Point().Lat(), Lng: a.Point().Lng()}
}

type ItemView struct {
	ServiceCode string `json:"service_code"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

type OrderView struct {
	ID              string       `json:"id"`
	CustomerID      string       `json:"customer_id"`
	Status          string       `json:"status"`
	Emergency       bool         `json:"emergency"`
	Items           []ItemView   `json:"items"`
	PickupAddress   *AddressView `json:"pickup_address,omitempty"`
	DeliveryAddress *AddressView `json:"delivery_address,omitempty"`
	Subtotal        int64        `json:"subtotal"`
	DeliveryFee     int64        `json:"delivery_fee"`
	EmergencyFee    int64        `json:"emergency_fee"`
	Total           int64        `json:"total"`
	PlacedAt        *time.Time   `json:"placed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

func orderView(o *order.Order) OrderView {
	items := make([]ItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemView{
			ServiceCode: it.ServiceCode(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			LineTotal:   it.LineTotal(),
		})
	}
	q := o.Quote()
	subtotal := q.Subtotal
	if o.Status() == order.InCart {
		subtotal = o.Subtotal()
	}
	return OrderView{
		ID:              o.ID().String(),
		CustomerID:      o.CustomerID().String(),
		Status:          o.Status().String(),
		Emergency:       o.Emergency(),
		Items:           items,
		PickupAddress:   addressView(o.PickupAddress()),
		DeliveryAddress: addressView(o.DeliveryAddress()),
		Subtotal:        subtotal,
		DeliveryFee:     q.DeliveryFee,
		EmergencyFee:    q.EmergencyFee,
		Total:           subtotal + q.DeliveryFee + q.EmergencyFee,
		PlacedAt:        o.PlacedAt(),
		CreatedAt:       o.CreatedAt(),
	}
}

type AssignmentView struct {
	ID         string     `json:"id"`
	OrderID    string     `json:"order_id"`
	Phase      string     `json:"phase"`
	Status     string     `json:"status"`
	AssignedTo string     `json:"assigned_to"`
	AssignedAt time.Time  `json:"assigned_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
}

func assignmentView(a *assignment.Assignment) AssignmentView {
	return AssignmentView{
		ID:         a.ID().String(),
		OrderID:    a.OrderID().String(),
		Phase:      a.Phase().String(),
		Status:     a.Status().String(),
		AssignedTo: a.AssignedTo().String(),
		AssignedAt: a.AssignedAt(),
		StartedAt:  a.StartedAt(),
	}
}

// AssignResultView reports one order of a bulk assignment. Error holds the
// message of a rejected order; Code is the status it would have had alone.
type AssignResultView struct {
	OrderID      string `json:"order_id"`
	AssignmentID string `json:"assignment_id,omitempty"`
	Skipped      bool   `json:"skipped,omitempty"`
	Code         int    `json:"code"`
	Error        string `json:"error,omitempty"`
}

func assignResultViews(results []commands.AssignResult) []AssignResultView {
	out := make([]AssignResultView, 0, len(results))
	for _, r := range results {
		v := AssignResultView{OrderID: r.OrderID.String(), Skipped: r.Skipped, Code: 200}
		if !r.AssignmentID.IsZero() {
			v.AssignmentID = r.AssignmentID.String()
		}
		if r.Err != nil {
			v.Code = StatusOf(r.Err)
			v.Error = r.Err.Error()
		}
		out = append(out, v)
	}
	return out
}

type AbsenceView struct {
	ID       string    `json:"id"`
	DriverID string    `json:"driver_id,omitempty"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Reason   string    `json:"reason,omitempty"`
}

func absenceView(a *driver.Absence) AbsenceView {
	return AbsenceView{
		ID:       a.ID().String(),
		DriverID: a.DriverID().String(),
		StartsAt: a.Window().Start(),
		EndsAt:   a.Window().End(),
		Reason:   a.Reason(),
	}
}

type PendingOrderView struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Emergency  bool      `json:"emergency"`
	Total      int64     `json:"total"`
	PlacedAt   time.Time `json:"placed_at"`
}

func pendingOrderViews(rows []queries.GetPendingOrdersQueryResponse) []PendingOrderView {
	out := make([]PendingOrderView, 0, len(rows))
	for _, r := range rows {
		out = append(out, PendingOrderView{
			ID:         r.ID.String(),
			CustomerID: r.CustomerID.String(),
			Emergency:  r.Emergency,
			Total:      r.Total,
			PlacedAt:   r.PlacedAt,
		})
	}
	return out
}

type DriverStopView struct {
	AssignmentID string      `json:"assignment_id"`
	OrderID      string      `json:"order_id"`
	Phase        string      `json:"phase"`
	Status       string      `json:"status"`
	Emergency    bool        `json:"emergency"`
	Address      AddressView `json:"address"`
	AssignedAt   time.Time   `json:"assigned_at"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
}

type DriverRouteView struct {
	Stops      []DriverStopView `json:"stops"`
	DistanceKm float64          `json:"distance_km"`
}

func driverRouteView(r queries.GetDriverAssignmentsQueryResponse) DriverRouteView {
	stops := make([]DriverStopView, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, DriverStopView{
			AssignmentID: s.AssignmentID.String(),
			OrderID:      s.OrderID.String(),
			Phase:        s.Phase,
			Status:       s.Status,
			Emergency:    s.Emergency,
			Address:      AddressView{Street: s.Street, Lat: s.Lat, Lng: s.Lng},
			AssignedAt:   s.AssignedAt,
			StartedAt:    s.StartedAt,
		})
	}
	return DriverRouteView{Stops: stops, DistanceKm: r.DistanceKm}
}

type CurrentHandlerView struct {
	OrderID   string     `json:"order_id"`
	Status    string     `json:"status"`
	Phase     string     `json:"phase,omitempty"`
	HandlerID string     `json:"handler_id,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
	Source    string     `json:"source,omitempty"`
}

func currentHandlerView(r queries.GetCurrentHandlerQueryResponse) CurrentHandlerView {
	v := CurrentHandlerView{OrderID: r.OrderID.String(), Status: r.Status, Phase: r.Phase, Source: r.Source}
	if r.HandlerID != nil {
		v.HandlerID = r.HandlerID.String()
		since := r.Since
		v.Since = &since
	}
	return v
}
