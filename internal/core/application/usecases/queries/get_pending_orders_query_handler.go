package queries

import (
	"context"
	"database/sql"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads unclaimed PENDING orders and sorts them with
// services.WorkQueue.
type GetPendingOrdersQueryHandler struct {
	db    *gorm.DB
	queue services.WorkQueue
}

func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db, queue: services.NewWorkQueue()}
}

func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.emergency,
			o.total,
			o.placed_at
		FROM orders o
		WHERE o.status = ?
		  AND NOT EXISTS (
			SELECT 1 FROM assignments a
			WHERE a.order_id = o.id AND a.phase = ? AND a.is_open = ?
		  )
	`, order.Pending.String(), assignment.Processing.String(), true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[kernel.UUID]GetPendingOrdersQueryResponse)
	items := make([]services.QueueItem, 0)
	for rows.Next() {
		var (
			id, customerID uuid.UUID
			placedAt       sql.NullTime
			resp           GetPendingOrdersQueryResponse
		)
		if err = rows.Scan(&id, &customerID, &resp.Emergency, &resp.Total, &placedAt); err != nil {
			return nil, err
		}
		if placedAt.Valid {
			resp.PlacedAt = placedAt.Time.UTC()
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}

		byID[resp.ID] = resp
		items = append(items, services.QueueItem{OrderID: resp.ID, Emergency: resp.Emergency, PlacedAt: resp.PlacedAt})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	out := make([]GetPendingOrdersQueryResponse, 0, len(items))
	for _, it := range h.queue.Sort(items) {
		out = append(out, byID[it.OrderID])
	}
	return out, nil
}
