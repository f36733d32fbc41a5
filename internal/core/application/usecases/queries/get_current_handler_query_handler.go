package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCurrentHandlerQueryHandler prefers an open assignment. Without one, the author
// of the latest status entry is the handler while the order sits in a workshop
// status; otherwise nobody is.
type GetCurrentHandlerQueryHandler struct {
	db *gorm.DB
}

func NewGetCurrentHandlerQueryHandler(db *gorm.DB) GetCurrentHandlerQueryHandler {
	return GetCurrentHandlerQueryHandler{db: db}
}

func (h GetCurrentHandlerQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentHandlerQuery,
) (GetCurrentHandlerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	db := h.db.WithContext(ctx)
	orderID := query.orderID

	var statuses []string
	if err := db.Raw(`SELECT status FROM orders WHERE id = ?`, orderID.Bytes()).Scan(&statuses).Error; err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	if len(statuses) == 0 {
		return GetCurrentHandlerQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	resp := GetCurrentHandlerQueryResponse{OrderID: orderID, Status: statuses[0]}

	var open []struct {
		Phase      string
		AssignedTo uuid.UUID
		AssignedAt time.Time
	}
	if err := db.Raw(`
		SELECT phase, assigned_to, assigned_at
		FROM assignments
		WHERE order_id = ? AND is_open = ?
		ORDER BY assigned_at DESC
		LIMIT 1
	`, orderID.Bytes(), true).Scan(&open).Error; err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	if len(open) > 0 {
		holder, err := kernel.UUIDFromBytes(open[0].AssignedTo[:])
		if err != nil {
			return GetCurrentHandlerQueryResponse{}, err
		}
		resp.Phase = open[0].Phase
		resp.HandlerID = &holder
		resp.Since = open[0].AssignedAt.UTC()
		resp.Source = HandlerFromAssignment
		return resp, nil
	}

	status, err := order.ParseStatus(resp.Status)
	if err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	if !status.IsWorkshop() {
		return resp, nil
	}

	var latest []struct {
		UpdatedBy *uuid.UUID
		CreatedAt time.Time
	}
	if err = db.Raw(`
		SELECT updated_by, created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, orderID.Bytes()).Scan(&latest).Error; err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	if len(latest) == 0 || latest[0].UpdatedBy == nil {
		return resp, nil
	}

	actor, err := kernel.UUIDFromBytes(latest[0].UpdatedBy[:])
	if err != nil {
		return GetCurrentHandlerQueryResponse{}, err
	}
	resp.HandlerID = &actor
	resp.Since = latest[0].CreatedAt.UTC()
	resp.Source = HandlerFromHistory
	return resp, nil
}
