package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriverAbsencesQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverAbsencesQueryHandler(db *gorm.DB) GetDriverAbsencesQueryHandler {
	return GetDriverAbsencesQueryHandler{db: db}
}

// Handle returns windows ordered by start.
func (h GetDriverAbsencesQueryHandler) Handle(
	ctx context.Context,
	query GetDriverAbsencesQuery,
) ([]GetDriverAbsencesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			starts_at,
			ends_at,
			reason
		FROM driver_absences
		WHERE driver_id = ?
		  AND ends_at > ?
		ORDER BY starts_at
	`, query.driverID.Bytes(), query.since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := make([]GetDriverAbsencesQueryResponse, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			resp GetDriverAbsencesQueryResponse
		)
		if err = rows.Scan(&id, &resp.StartsAt, &resp.EndsAt, &resp.Reason); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.StartsAt, resp.EndsAt = resp.StartsAt.UTC(), resp.EndsAt.UTC()
		absences = append(absences, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return absences, nil
}
