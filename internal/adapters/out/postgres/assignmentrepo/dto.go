// Package assignmentrepo persists processing claims and driver assignments.
package assignmentrepo

import (
	"time"

	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is one row of the assignments table. IsOpen mirrors the status so
// the partial unique index on (order_id, phase) can enforce one open claim.
type AssignmentDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Phase         string     `gorm:"size:16;not null"`
	AssignedTo    uuid.UUID  `gorm:"type:uuid;index;not null"`
	AssignedBy    *uuid.UUID `gorm:"type:uuid"`
	AssignedAt    time.Time  `gorm:"not null"`
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Status        string `gorm:"size:32;not null"`
	DeclineReason string `gorm:"type:text"`
	IsOpen        bool   `gorm:"not null;index"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:            a.ID().Bytes(),
		OrderID:       a.OrderID().Bytes(),
		Phase:         a.Phase().String(),
		AssignedTo:    a.AssignedTo().Bytes(),
		AssignedAt:    a.AssignedAt(),
		StartedAt:     a.StartedAt(),
		CompletedAt:   a.CompletedAt(),
		Status:        a.Status().String(),
		DeclineReason: a.DeclineReason(),
		IsOpen:        a.IsOpen(),
	}
	if by := a.AssignedBy(); by != nil {
		raw := by.Bytes()
		dto.AssignedBy = &raw
	}
	return dto
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	assignedTo, err := kernel.UUIDFromBytes(dto.AssignedTo[:])
	if err != nil {
		return nil, err
	}
	var assignedBy *kernel.UUID
	if dto.AssignedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.AssignedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		assignedBy = &by
	}
	phase, err := assignment.ParsePhase(dto.Phase)
	if err != nil {
		return nil, err
	}
	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(assignment.RestoreParams{
		ID:            id,
		OrderID:       orderID,
		Phase:         phase,
		AssignedTo:    assignedTo,
		AssignedBy:    assignedBy,
		AssignedAt:    dto.AssignedAt.UTC(),
		StartedAt:     utc(dto.StartedAt),
		CompletedAt:   utc(dto.CompletedAt),
		Status:        status,
		DeclineReason: dto.DeclineReason,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
