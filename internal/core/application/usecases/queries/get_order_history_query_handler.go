package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler renders an order's timeline and keeps the result in
// a ports.HistoryCache. A failing cache only costs a database read; it never fails
// the query. The cache is invalidated after every committed change to the order.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db, redisCache, logger)
//	query, err := NewGetOrderHistoryQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	timeline, err := handler.Handle(ctx, query)
type GetOrderHistoryQueryHandler struct {
	db     *gorm.DB
	cache  ports.HistoryCache
	logger *slog.Logger
}

// NewGetOrderHistoryQueryHandler accepts a nil cache, which disables caching.
func NewGetOrderHistoryQueryHandler(db *gorm.DB, cache ports.HistoryCache, logger *slog.Logger) GetOrderHistoryQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return GetOrderHistoryQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "order_history_query"),
	}
}

func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) (GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	if cached, ok := h.fromCache(ctx, query); ok {
		return cached, nil
	}

	resp, err := h.load(ctx, query)
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	if h.cache != nil {
		raw, encErr := json.Marshal(resp)
		if encErr == nil {
			encErr = h.cache.Set(ctx, query.OrderID(), raw)
		}
		if encErr != nil {
			h.logger.WarnContext(ctx, "failed to cache order history",
				"order_id", query.OrderID().String(), "error", encErr)
		}
	}
	return resp, nil
}

func (h GetOrderHistoryQueryHandler) fromCache(ctx context.Context, query GetOrderHistoryQuery) (GetOrderHistoryQueryResponse, bool) {
	if h.cache == nil {
		return GetOrderHistoryQueryResponse{}, false
	}

	raw, hit, err := h.cache.Get(ctx, query.OrderID())
	if err != nil {
		h.logger.WarnContext(ctx, "order history cache unavailable",
			"order_id", query.OrderID().String(), "error", err)
		return GetOrderHistoryQueryResponse{}, false
	}
	if !hit {
		return GetOrderHistoryQueryResponse{}, false
	}

	var resp GetOrderHistoryQueryResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		h.logger.WarnContext(ctx, "discarding malformed cached history",
			"order_id", query.OrderID().String(), "error", err)
		return GetOrderHistoryQueryResponse{}, false
	}
	return resp, true
}

func (h GetOrderHistoryQueryHandler) load(ctx context.Context, query GetOrderHistoryQuery) (GetOrderHistoryQueryResponse, error) {
	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var statuses []string
	if err := db.Raw(`SELECT status FROM orders WHERE id = ?`, orderID.Bytes()).Scan(&statuses).Error; err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}
	if len(statuses) == 0 {
		return GetOrderHistoryQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	resp := GetOrderHistoryQueryResponse{
		OrderID: orderID.String(),
		Status:  statuses[0],
		Entries: make([]HistoryEntryView, 0),
	}

	rows, err := db.Raw(`
		SELECT
			id,
			status,
			status_description,
			notes,
			updated_by,
			is_fail,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}
	defer rows.Close()

	index := make(map[uint64]int)
	for rows.Next() {
		var (
			entry     HistoryEntryView
			notes     sql.NullString
			updatedBy uuid.NullUUID
		)
		if err = rows.Scan(
			&entry.ID,
			&entry.Status,
			&entry.Description,
			&notes,
			&updatedBy,
			&entry.IsFail,
			&entry.CreatedAt,
		); err != nil {
			return GetOrderHistoryQueryResponse{}, err
		}
		entry.Notes = notes.String
		if updatedBy.Valid {
			entry.UpdatedBy = updatedBy.UUID.String()
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		entry.Photos = make([]string, 0)

		index[entry.ID] = len(resp.Entries)
		resp.Entries = append(resp.Entries, entry)
	}
	if err = rows.Err(); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	if len(index) == 0 {
		return resp, nil
	}

	ids := make([]uint64, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	var photos []struct {
		HistoryEntryID uint64
		URL            string
	}
	if err = db.Raw(`
		SELECT history_entry_id, url
		FROM order_status_photos
		WHERE history_entry_id IN ?
		ORDER BY id
	`, ids).Scan(&photos).Error; err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}
	for _, p := range photos {
		i := index[p.HistoryEntryID]
		resp.Entries[i].Photos = append(resp.Entries[i].Photos, p.URL)
	}
	return resp, nil
}
