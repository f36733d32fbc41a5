package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsNotInCart is returned by cart mutations once the order has been placed.
	ErrOrderIsNotInCart = errs.NewInvalidStateError("order", "placed", "cart mutation")
)

// Quote is the price breakdown produced by a pricing calculator at placement time.
// All amounts are in minor currency units.
type Quote struct {
	Subtotal     int64
	DeliveryFee  int64
	EmergencyFee int64
}

// Total is the amount charged to the customer.
func (q Quote) Total() int64 {
	return q.Subtotal + q.DeliveryFee + q.EmergencyFee
}

// Order is the aggregate root of the laundry pipeline. It owns the cart lines, the
// placement details and the current status. History entries and assignments are
// stored separately but reference the order id.
//
// Order follows these invariants:
//   - Must have a valid id and customer id
//   - Cart lines change only while the order is INCART
//   - Placement details (addresses, prices, emergency) are written once, by Place
//   - Status moves only along the table in status.go, except for RevertScheduling
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	status     Status
	emergency  bool

	pickupAddress   *kernel.Address
	deliveryAddress *kernel.Address

	items []Item
	quote Quote

	placedAt  *time.Time
	createdAt time.Time

	isConstructed bool
}

// NewOrder materializes a fresh cart for a customer. The order starts INCART; the
// matching INCART history entry is written by the lifecycle engine.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, clock.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(id, customerID kernel.UUID, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        InCart,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted state back into the domain.
type RestoreParams struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	Status          Status
	Emergency       bool
	PickupAddress   *kernel.Address
	DeliveryAddress *kernel.Address
	Items           []Item
	Quote           Quote
	PlacedAt        *time.Time
	CreatedAt       time.Time
}

// RestoreOrder rebuilds an order read back from storage. It validates identity and
// status but does not replay business rules.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		emergency:       p.Emergency,
		pickupAddress:   p.PickupAddress,
		deliveryAddress: p.DeliveryAddress,
		items:           append([]Item(nil), p.Items...),
		quote:           p.Quote,
		placedAt:        p.PlacedAt,
		createdAt:       p.CreatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		p.Status.Validate(),
	); err != nil {
		return nil, fmt.Errorf("restore order: %w", err)
	}
	o.status = p.Status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

// Emergency orders jump the staff and driver work queues.
func (o *Order) Emergency() bool {
	return o.emergency
}

func (o *Order) PickupAddress() *kernel.Address {
	return o.pickupAddress
}

func (o *Order) DeliveryAddress() *kernel.Address {
	return o.deliveryAddress
}

// Items returns a copy of the cart lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) Quote() Quote {
	return o.quote
}

func (o *Order) PlacedAt() *time.Time {
	return o.placedAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether customerID placed this order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// AddItem puts quantity units of a service into the cart. Adding a service that is
// already in the cart increases its quantity and refreshes its unit price.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status != InCart {
		return ErrOrderIsNotInCart
	}

	for i := range o.items {
		if o.items[i].serviceCode == item.serviceCode {
			o.items[i].quantity += item.quantity
			o.items[i].unitPrice = item.unitPrice
			return nil
		}
	}
	o.items = append(o.items, item)
	return nil
}

// RemoveItem drops a service from the cart.
func (o *Order) RemoveItem(serviceCode string) error {
	if o.status != InCart {
		return ErrOrderIsNotInCart
	}

	for i := range o.items {
		if o.items[i].serviceCode == serviceCode {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("serviceCode", serviceCode)
}

// Subtotal sums the cart lines.
func (o *Order) Subtotal() int64 {
	var sum int64
	for _, it := range o.items {
		sum += it.LineTotal()
	}
	return sum
}

// Place writes the placement details. It does not change the status: the caller
// moves the order to PENDING through the lifecycle engine in the same unit of work.
func (o *Order) Place(pickup, delivery kernel.Address, emergency bool, quote Quote, now time.Time) error {
	if o.status != InCart {
		return errs.NewInvalidStateError("order", o.status.String(), Pending.String())
	}
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	if quote.Subtotal < 0 || quote.DeliveryFee < 0 || quote.EmergencyFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quote", fmt.Errorf("negative amount in %+v", quote))
	}

	placedAt := now.UTC()
	o.pickupAddress = &pickup
	o.deliveryAddress = &delivery
	o.emergency = emergency
	o.quote = quote
	o.placedAt = &placedAt
	return nil
}

// ChangeStatus applies a legal transition.
func (o *Order) ChangeStatus(target Status) error {
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}
	o.status = target
	return nil
}

// RevertScheduling undoes a driver scheduling that never started. The order must be
// in SCHEDULED_PICKUP or SCHEDULED_DELIVERY and previous must be the status recorded
// before the scheduling entries.
func (o *Order) RevertScheduling(previous Status) error {
	if !o.status.IsScheduling() {
		return errs.NewInvalidStateError("order", o.status.String(), previous.String())
	}
	if err := previous.Validate(); err != nil {
		return err
	}
	if !previous.CanTransitionTo(o.status) {
		return errs.NewInvalidStateError("order", o.status.String(), previous.String())
	}
	o.status = previous
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

// Item is one cart line.
type Item struct {
	serviceCode string
	quantity    int
	unitPrice   int64
}

// NewItem validates a cart line. unitPrice is in minor currency units.
func NewItem(serviceCode string, quantity int, unitPrice int64) (Item, error) {
	serviceCode = strings.TrimSpace(serviceCode)

	var failures []error
	if serviceCode == "" {
		failures = append(failures, errs.NewValueIsRequiredError("serviceCode"))
	}
	if quantity <= 0 {
		failures = append(failures,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice < 0 {
		failures = append(failures,
			errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%d is negative", unitPrice)))
	}
	if err := errors.Join(failures...); err != nil {
		return Item{}, err
	}

	return Item{serviceCode: serviceCode, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) Validate() error {
	if i.serviceCode == "" || i.quantity <= 0 {
		return errs.NewValueIsInvalidError("item must be created via NewItem")
	}
	return nil
}

func (i Item) ServiceCode() string {
	return i.serviceCode
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

func (i Item) LineTotal() int64 {
	return int64(i.quantity) * i.unitPrice
}
