// Package orderrepo persists the order aggregate, its cart lines and its status log.
// It converts between domain entities and database rows.
package orderrepo

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status          string     `gorm:"size:32;index;not null"`
	Emergency       bool       `gorm:"not null;default:false"`
	PickupAddress   AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	DeliveryAddress AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Subtotal        int64      `gorm:"not null;default:0"`
	DeliveryFee     int64      `gorm:"not null;default:0"`
	EmergencyFee    int64      `gorm:"not null;default:0"`
	Total           int64      `gorm:"not null;default:0"`
	PlacedAt        *time.Time
	CreatedAt       time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded twice in the orders table. All columns are NULL until the
// order is placed.
type AddressDTO struct {
	Street *string
	Lat    *float64
	Lng    *float64
}

// ItemDTO is one cart line.
type ItemDTO struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceCode string    `gorm:"size:64;not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO is one row of the status log. The auto-increment id orders entries.
type HistoryDTO struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement"`
	OrderID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status            string     `gorm:"size:32;not null"`
	StatusDescription string     `gorm:"size:255"`
	Notes             *string    `gorm:"type:text"`
	UpdatedBy         *uuid.UUID `gorm:"type:uuid"`
	IsFail            bool       `gorm:"not null;default:false"`
	CreatedAt         time.Time
}

func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// PhotoDTO is an evidence URL attached to a history row.
type PhotoDTO struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	HistoryEntryID uint64 `gorm:"index;not null"`
	URL            string `gorm:"size:1024;not null"`
	CreatedAt      time.Time
}

func (PhotoDTO) TableName() string {
	return "order_status_photos"
}

func addressFromDomain(a *kernel.Address) AddressDTO {
	if a == nil {
		return AddressDTO{}
	}
	street, lat, lng := a.Street(), a.Point().Lat(), a.Point().Lng()
	return AddressDTO{Street: &street, Lat: &lat, Lng: &lng}
}

func addressToDomain(dto AddressDTO) (*kernel.Address, error) {
	if dto.Street == nil || dto.Lat == nil || dto.Lng == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
	if err != nil {
		return nil, err
	}
	addr, err := kernel.NewAddress(*dto.Street, point)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// fromDomain converts an order aggregate to its row and cart lines.
func fromDomain(o *order.Order) (OrderDTO, []ItemDTO) {
	q := o.Quote()
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		Status:          o.Status().String(),
		Emergency:       o.Emergency(),
		PickupAddress:   addressFromDomain(o.PickupAddress()),
		DeliveryAddress: addressFromDomain(o.DeliveryAddress()),
		Subtotal:        q.Subtotal,
		DeliveryFee:     q.DeliveryFee,
		EmergencyFee:    q.EmergencyFee,
		Total:           q.Total(),
		PlacedAt:        o.PlacedAt(),
		CreatedAt:       o.CreatedAt(),
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:     dto.ID,
			ServiceCode: it.ServiceCode(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
		})
	}
	return dto, items
}

// toDomain rebuilds the aggregate using RestoreOrder.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	pickup, pickupErr := addressToDomain(dto.PickupAddress)
	delivery, deliveryErr := addressToDomain(dto.DeliveryAddress)
	if err = errors.Join(pickupErr, deliveryErr); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, it := range itemDTOs {
		item, itemErr := order.NewItem(it.ServiceCode, it.Quantity, it.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var placedAt *time.Time
	if dto.PlacedAt != nil {
		t := dto.PlacedAt.UTC()
		placedAt = &t
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		CustomerID:      customerID,
		Status:          status,
		Emergency:       dto.Emergency,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Items:           items,
		Quote: order.Quote{
			Subtotal:     dto.Subtotal,
			DeliveryFee:  dto.DeliveryFee,
			EmergencyFee: dto.EmergencyFee,
		},
		PlacedAt:  placedAt,
		CreatedAt: dto.CreatedAt.UTC(),
	})
}

func historyFromDomain(e *order.HistoryEntry) HistoryDTO {
	dto := HistoryDTO{
		ID:                e.ID(),
		OrderID:           e.OrderID().Bytes(),
		Status:            e.Status().String(),
		StatusDescription: e.Description(),
		IsFail:            e.IsFail(),
		CreatedAt:         e.CreatedAt(),
	}
	if notes := e.Notes(); notes != "" {
		dto.Notes = &notes
	}
	if actor := e.UpdatedBy(); actor != nil {
		raw := actor.Bytes()
		dto.UpdatedBy = &raw
	}
	return dto
}

func historyToDomain(dto HistoryDTO, photoDTOs []PhotoDTO) (*order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var actor *kernel.UUID
	if dto.UpdatedBy != nil {
		a, actorErr := kernel.UUIDFromBytes((*dto.UpdatedBy)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actor = &a
	}

	var notes string
	if dto.Notes != nil {
		notes = *dto.Notes
	}

	photos := make([]order.Photo, 0, len(photoDTOs))
	for _, p := range photoDTOs {
		photos = append(photos, order.RestorePhoto(p.ID, p.HistoryEntryID, p.URL, p.CreatedAt.UTC()))
	}

	return order.RestoreHistoryEntry(order.HistoryEntryParams{
		ID:          dto.ID,
		OrderID:     orderID,
		Status:      status,
		Description: dto.StatusDescription,
		Notes:       notes,
		UpdatedBy:   actor,
		IsFail:      dto.IsFail,
		CreatedAt:   dto.CreatedAt.UTC(),
		Photos:      photos,
	}), nil
}
