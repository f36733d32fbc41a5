package queries

import (
	"context"
	"database/sql"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverAssignmentsQueryHandler reads open driver assignments and, given a start
// point, orders them with services.RoutePlanner.
//
// Example:
//
//	depot, _ := kernel.NewGeoPoint(-6.2, 106.8)
//	query, err := NewGetDriverAssignmentsQuery(driverID, &depot)
//	if err != nil {
//	    return err
//	}
//	route, err := NewGetDriverAssignmentsQueryHandler(db).Handle(ctx, query)
type GetDriverAssignmentsQueryHandler struct {
	db      *gorm.DB
	planner services.RoutePlanner
}

func NewGetDriverAssignmentsQueryHandler(db *gorm.DB) GetDriverAssignmentsQueryHandler {
	return GetDriverAssignmentsQueryHandler{db: db, planner: services.NewRoutePlanner()}
}

func (h GetDriverAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverAssignmentsQuery,
) (GetDriverAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverAssignmentsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			a.phase,
			a.status,
			a.assigned_at,
			a.started_at,
			o.emergency,
			CASE WHEN a.phase = ? THEN o.pickup_street ELSE o.delivery_street END,
			CASE WHEN a.phase = ? THEN o.pickup_lat ELSE o.delivery_lat END,
			CASE WHEN a.phase = ? THEN o.pickup_lng ELSE o.delivery_lng END
		FROM assignments a
		JOIN orders o ON o.id = a.order_id
		WHERE a.assigned_to = ?
		  AND a.is_open = ?
		  AND a.phase IN ?
		ORDER BY a.assigned_at, a.id
	`,
		assignment.Pickup.String(), assignment.Pickup.String(), assignment.Pickup.String(),
		query.driverID.Bytes(), true,
		[]string{assignment.Pickup.String(), assignment.Delivery.String()},
	).Rows()
	if err != nil {
		return GetDriverAssignmentsQueryResponse{}, err
	}
	defer rows.Close()

	stops := make([]DriverStop, 0)
	for rows.Next() {
		var (
			id, orderID uuid.UUID
			startedAt   sql.NullTime
			street      sql.NullString
			lat, lng    sql.NullFloat64
			stop        DriverStop
		)
		if err = rows.Scan(
			&id,
			&orderID,
			&stop.Phase,
			&stop.Status,
			&stop.AssignedAt,
			&startedAt,
			&stop.Emergency,
			&street,
			&lat,
			&lng,
		); err != nil {
			return GetDriverAssignmentsQueryResponse{}, err
		}

		if stop.AssignmentID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetDriverAssignmentsQueryResponse{}, err
		}
		if stop.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetDriverAssignmentsQueryResponse{}, err
		}
		stop.AssignedAt = stop.AssignedAt.UTC()
		if startedAt.Valid {
			t := startedAt.Time.UTC()
			stop.StartedAt = &t
		}
		stop.Street, stop.Lat, stop.Lng = street.String, lat.Float64, lng.Float64

		stops = append(stops, stop)
	}
	if err = rows.Err(); err != nil {
		return GetDriverAssignmentsQueryResponse{}, err
	}

	if query.from == nil || len(stops) == 0 {
		return GetDriverAssignmentsQueryResponse{Stops: stops}, nil
	}
	return h.plan(*query.from, stops)
}

// plan keys stops by order; an order has at most one open driver assignment.
func (h GetDriverAssignmentsQueryHandler) plan(from kernel.GeoPoint, stops []DriverStop) (GetDriverAssignmentsQueryResponse, error) {
	byOrder := make(map[kernel.UUID]DriverStop, len(stops))
	input := make([]services.Stop, 0, len(stops))
	for _, s := range stops {
		point, err := kernel.NewGeoPoint(s.Lat, s.Lng)
		if err != nil {
			return GetDriverAssignmentsQueryResponse{}, err
		}
		byOrder[s.OrderID] = s
		input = append(input, services.Stop{OrderID: s.OrderID, Point: point})
	}

	planned, km, err := h.planner.Plan(from, input)
	if err != nil {
		return GetDriverAssignmentsQueryResponse{}, err
	}

	ordered := make([]DriverStop, 0, len(planned))
	for _, p := range planned {
		ordered = append(ordered, byOrder[p.OrderID])
	}
	return GetDriverAssignmentsQueryResponse{Stops: ordered, DistanceKm: km}, nil
}
