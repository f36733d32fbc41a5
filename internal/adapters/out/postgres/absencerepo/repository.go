// Package absencerepo persists driver absence windows.
package absencerepo

import (
	"context"
	"time"

	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AbsenceDTO is one row of driver_absences.
type AbsenceDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartsAt  time.Time `gorm:"not null"`
	EndsAt    time.Time `gorm:"not null"`
	Reason    string    `gorm:"type:text"`
	CreatedAt time.Time
}

func (AbsenceDTO) TableName() string {
	return "driver_absences"
}

// GormAbsenceRepository implements AbsenceRepository using GORM.
type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) *GormAbsenceRepository {
	return &GormAbsenceRepository{db: db}
}

func (r *GormAbsenceRepository) Add(ctx context.Context, a *driver.Absence) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return dberr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "absence "+a.ID().String())
}

func (r *GormAbsenceRepository) Update(ctx context.Context, a *driver.Absence) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AbsenceDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "absence "+a.ID().String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("absence", a.ID().String())
	}
	return nil
}

func (r *GormAbsenceRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&AbsenceDTO{})
	if result.Error != nil {
		return dberr.Translate(result.Error, "absence "+id.String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("absence", id.String())
	}
	return nil
}

func (r *GormAbsenceRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Absence, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AbsenceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound(err, "absence", id.String())
	}
	return toDomain(dto)
}

func (r *GormAbsenceRepository) ListByDriver(ctx context.Context, driverID kernel.UUID) ([]*driver.Absence, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AbsenceDTO
	if err := r.db.WithContext(ctx).Where("driver_id = ?", driverID.Bytes()).Order("starts_at").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate(err, "absences of driver "+driverID.String())
	}

	result := make([]*driver.Absence, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func fromDomain(a *driver.Absence) AbsenceDTO {
	return AbsenceDTO{
		ID:        a.ID().Bytes(),
		DriverID:  a.DriverID().Bytes(),
		StartsAt:  a.Window().Start(),
		EndsAt:    a.Window().End(),
		Reason:    a.Reason(),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto AbsenceDTO) (*driver.Absence, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	window, err := kernel.NewTimeRange(dto.StartsAt.UTC(), dto.EndsAt.UTC())
	if err != nil {
		return nil, err
	}
	return driver.RestoreAbsence(id, driverID, window, dto.Reason, dto.CreatedAt.UTC())
}
