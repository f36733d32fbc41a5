package orderrepo

import (
	"context"

	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its cart lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return dberr.Translate(err, "order "+aggregate.ID().String())
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return dberr.Translate(err, "items of order "+aggregate.ID().String())
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves every column of an existing order and replaces its cart lines.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "order "+aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return dberr.Translate(err, "items of order "+aggregate.ID().String())
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return dberr.Translate(err, "items of order "+aggregate.ID().String())
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row until the transaction ends. SQLite has no row
// locks and the dialector drops the clause; there the single writer connection
// serializes transactions instead.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetCart returns the newest INCART order of the customer.
func (r *GormOrderRepository) GetCart(ctx context.Context, customerID kernel.UUID) (*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID.Bytes(), order.InCart.String()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		return nil, dberr.NotFound(err, "cart of customer", customerID.String())
	}

	return r.withItems(ctx, dto)
}

// Delete purges the order and everything that references it.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	raw := id.Bytes()
	historyIDs := db.Model(&HistoryDTO{}).Select("id").Where("order_id = ?", raw)

	resource := "order " + id.String()
	if err := db.Where("history_entry_id IN (?)", historyIDs).Delete(&PhotoDTO{}).Error; err != nil {
		return dberr.Translate(err, resource)
	}
	for _, model := range []any{&HistoryDTO{}, &ItemDTO{}} {
		if err := db.Where("order_id = ?", raw).Delete(model).Error; err != nil {
			return dberr.Translate(err, resource)
		}
	}
	if err := db.Exec("DELETE FROM assignments WHERE order_id = ?", raw).Error; err != nil {
		return dberr.Translate(err, resource)
	}

	result := db.Where("id = ?", raw).Delete(&OrderDTO{})
	if result.Error != nil {
		return dberr.Translate(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound(err, "order", id.String())
	}

	return r.withItems(ctx, dto)
}

func (r *GormOrderRepository) withItems(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var items []ItemDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Order("id").Find(&items).Error; err != nil {
		return nil, dberr.Translate(err, "items of order")
	}
	return toDomain(dto, items)
}
