// Package outboxrepo stores events awaiting delivery to the message bus.
package outboxrepo

import (
	"context"
	"time"

	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO is one row of outbox_events.
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic       string    `gorm:"size:128;not null"`
	Key         string    `gorm:"column:event_key;size:64;not null"`
	Payload     []byte    `gorm:"not null"`
	Status      string    `gorm:"size:16;index;not null"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
	PublishedAt *time.Time
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, e event.Event) error {
	if err := e.ID.Validate(); err != nil {
		return err
	}
	if e.Topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	dto := EventDTO{
		ID:        e.ID.Bytes(),
		Topic:     e.Topic,
		Key:       e.Key,
		Payload:   e.Payload,
		Status:    string(e.Status),
		Attempts:  e.Attempts,
		LastError: e.LastError,
		CreatedAt: e.CreatedAt,
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "outbox event "+e.ID.String())
}

func (r *GormOutboxRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]event.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("status = ? OR (status = ? AND attempts < ?)",
			string(event.StatusCreated), string(event.StatusFailed), maxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Translate(err, "outbox")
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		var publishedAt *time.Time
		if dto.PublishedAt != nil {
			t := dto.PublishedAt.UTC()
			publishedAt = &t
		}
		events = append(events, event.Event{
			ID:          id,
			Topic:       dto.Topic,
			Key:         dto.Key,
			Payload:     dto.Payload,
			Status:      event.Status(dto.Status),
			Attempts:    dto.Attempts,
			LastError:   dto.LastError,
			CreatedAt:   dto.CreatedAt.UTC(),
			PublishedAt: publishedAt,
		})
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkDone(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"status":       string(event.StatusDone),
		"published_at": at.UTC(),
		"last_error":   "",
	})
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, attempts int, lastError string) error {
	return r.update(ctx, id, map[string]any{
		"status":     string(event.StatusFailed),
		"attempts":   attempts,
		"last_error": lastError,
	})
}

func (r *GormOutboxRepository) update(ctx context.Context, id kernel.UUID, columns map[string]any) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EventDTO{}).Where("id = ?", id.Bytes()).Updates(columns)
	if result.Error != nil {
		return dberr.Translate(result.Error, "outbox event "+id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox event", id.String())
	}
	return nil
}
