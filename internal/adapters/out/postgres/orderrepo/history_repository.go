package orderrepo

import (
	"context"

	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts the entry, assigns its id and stores its photos.
func (r *GormHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID() != 0 {
		return errs.NewValueIsInvalidError("history entry already persisted")
	}

	dto := historyFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "history of order "+entry.OrderID().String())
	}
	entry.AssignID(dto.ID)

	return r.AddPhotos(ctx, dto.ID, entry.Photos())
}

func (r *GormHistoryRepository) AddPhotos(ctx context.Context, entryID uint64, photos []order.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	dtos := make([]PhotoDTO, 0, len(photos))
	for _, p := range photos {
		dtos = append(dtos, PhotoDTO{HistoryEntryID: entryID, URL: p.URL(), CreatedAt: p.CreatedAt()})
	}
	return dberr.Translate(r.db.WithContext(ctx).Create(&dtos).Error, "photos of history entry")
}

// UpdateNotes writes only the notes column.
func (r *GormHistoryRepository) UpdateNotes(ctx context.Context, entry *order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(entry)
	result := r.db.WithContext(ctx).Model(&HistoryDTO{}).Where("id = ?", dto.ID).Update("notes", dto.Notes)
	if result.Error != nil {
		return dberr.Translate(result.Error, "history entry")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("history entry", dto.ID)
	}
	return nil
}

func (r *GormHistoryRepository) List(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("id").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate(err, "history of order "+orderID.String())
	}
	return r.withPhotos(ctx, dtos)
}

func (r *GormHistoryRepository) Latest(ctx context.Context, orderID kernel.UUID) (*order.HistoryEntry, error) {
	return r.latest(ctx, r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()), orderID)
}

func (r *GormHistoryRepository) LatestByStatus(ctx context.Context, orderID kernel.UUID, status order.Status) (*order.HistoryEntry, error) {
	db := r.db.WithContext(ctx).Where("order_id = ? AND status = ?", orderID.Bytes(), status.String())
	return r.latest(ctx, db, orderID)
}

// Delete removes entries and their photos.
func (r *GormHistoryRepository) Delete(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("history_entry_id IN ?", ids).Delete(&PhotoDTO{}).Error; err != nil {
		return dberr.Translate(err, "history photos")
	}
	return dberr.Translate(db.Where("id IN ?", ids).Delete(&HistoryDTO{}).Error, "history entries")
}

func (r *GormHistoryRepository) latest(ctx context.Context, db *gorm.DB, orderID kernel.UUID) (*order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto HistoryDTO
	if err := db.Order("id DESC").First(&dto).Error; err != nil {
		return nil, dberr.NotFound(err, "history of order", orderID.String())
	}

	entries, err := r.withPhotos(ctx, []HistoryDTO{dto})
	if err != nil {
		return nil, err
	}
	return entries[0], nil
}

func (r *GormHistoryRepository) withPhotos(ctx context.Context, dtos []HistoryDTO) ([]*order.HistoryEntry, error) {
	entries := make([]*order.HistoryEntry, 0, len(dtos))
	if len(dtos) == 0 {
		return entries, nil
	}

	ids := make([]uint64, 0, len(dtos))
	for _, d := range dtos {
		ids = append(ids, d.ID)
	}

	var photos []PhotoDTO
	if err := r.db.WithContext(ctx).Where("history_entry_id IN ?", ids).Order("id").Find(&photos).Error; err != nil {
		return nil, dberr.Translate(err, "history photos")
	}
	byEntry := make(map[uint64][]PhotoDTO, len(dtos))
	for _, p := range photos {
		byEntry[p.HistoryEntryID] = append(byEntry[p.HistoryEntryID], p)
	}

	for _, d := range dtos {
		e, err := historyToDomain(d, byEntry[d.ID])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
