package assignmentrepo

import (
	"context"
	"time"

	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new assignment. A second open assignment for the same order and
// phase violates ux_assignments_open and is reported as errs.ConflictError.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, a.Phase().String()+" assignment of order "+a.OrderID().String())
	}

	r.tracker.TrackAggregate(a.OrderID(), a)
	return nil
}

func (r *GormAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "assignment "+a.ID().String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", a.ID().String())
	}

	r.tracker.TrackAggregate(a.OrderID(), a)
	return nil
}

func (r *GormAssignmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&AssignmentDTO{})
	if result.Error != nil {
		return dberr.Translate(result.Error, "assignment "+id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", id.String())
	}
	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound(err, "assignment", id.String())
	}
	return toDomain(dto)
}

func (r *GormAssignmentRepository) GetOpen(ctx context.Context, orderID kernel.UUID, phase assignment.Phase) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND phase = ? AND is_open = ?", orderID.Bytes(), phase.String(), true).
		First(&dto).Error
	if err != nil {
		return nil, dberr.NotFound(err, "open "+phase.String()+" assignment of order", orderID.String())
	}
	return toDomain(dto)
}

func (r *GormAssignmentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

func (r *GormAssignmentRepository) ListOpenByAssignee(ctx context.Context, actorID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := actorID.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("assigned_to = ? AND is_open = ?", actorID.Bytes(), true))
}

// ListOpenAssignedBefore compares timestamps in Go so the result does not depend on
// how the driver encodes time values.
func (r *GormAssignmentRepository) ListOpenAssignedBefore(ctx context.Context, phase assignment.Phase, t time.Time) ([]*assignment.Assignment, error) {
	open, err := r.find(r.db.WithContext(ctx).Where("phase = ? AND is_open = ?", phase.String(), true))
	if err != nil {
		return nil, err
	}

	stale := make([]*assignment.Assignment, 0, len(open))
	for _, a := range open {
		if a.AssignedAt().Before(t) {
			stale = append(stale, a)
		}
	}
	return stale, nil
}

func (r *GormAssignmentRepository) find(db *gorm.DB) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	if err := db.Order("assigned_at").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate(err, "assignments")
	}

	result := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}
