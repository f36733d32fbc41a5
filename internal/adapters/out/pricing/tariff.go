// Package pricing quotes orders from a static tariff. The delivery fee grows with
// the great-circle distance the drivers travel from the shop to the pickup address
// and from the shop to the delivery address.
package pricing

import (
	"context"
	"math"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// Tariff holds prices in minor currency units.
type Tariff struct {
	Services     map[string]int64
	BaseFee      int64
	PerKmFee     int64
	FreeKm       float64
	EmergencyFee int64
	Shop         kernel.GeoPoint
}

// DefaultServices is the catalogue used when configuration names none.
func DefaultServices() map[string]int64 {
	return map[string]int64{
		"wash-fold":  7000,
		"wash-iron":  9000,
		"dry-clean":  15000,
		"bed-cover":  25000,
		"shoe-clean": 35000,
		"iron-only":  5000,
	}
}

// Calculator implements ports.PricingCalculator.
type Calculator struct {
	tariff Tariff
}

func NewCalculator(t Tariff) (*Calculator, error) {
	if err := t.Shop.Validate(); err != nil {
		return nil, err
	}
	if t.BaseFee < 0 || t.PerKmFee < 0 || t.EmergencyFee < 0 || t.FreeKm < 0 {
		return nil, errs.NewValueIsInvalidError("tariff")
	}
	if len(t.Services) == 0 {
		t.Services = DefaultServices()
	}
	return &Calculator{tariff: t}, nil
}

func (c *Calculator) UnitPrice(_ context.Context, serviceCode string) (int64, error) {
	price, ok := c.tariff.Services[serviceCode]
	if !ok {
		return 0, errs.NewObjectNotFoundError("service", serviceCode)
	}
	return price, nil
}

func (c *Calculator) Quote(_ context.Context, req ports.PriceRequest) (order.Quote, error) {
	var q order.Quote
	for _, it := range req.Items {
		q.Subtotal += it.LineTotal()
	}

	km, err := c.tripKm(req.Pickup, req.Delivery)
	if err != nil {
		return order.Quote{}, err
	}
	q.DeliveryFee = c.tariff.BaseFee
	if billable := math.Ceil(km - c.tariff.FreeKm); billable > 0 {
		q.DeliveryFee += int64(billable) * c.tariff.PerKmFee
	}

	if req.Emergency {
		q.EmergencyFee = c.tariff.EmergencyFee
	}
	return q, nil
}

func (c *Calculator) tripKm(pickup, delivery kernel.Address) (float64, error) {
	toPickup, err := c.tariff.Shop.DistanceKm(pickup.Point())
	if err != nil {
		return 0, err
	}
	toDelivery, err := c.tariff.Shop.DistanceKm(delivery.Point())
	if err != nil {
		return 0, err
	}
	return toPickup + toDelivery, nil
}
