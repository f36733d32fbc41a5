package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the position of an order in the fixed laundry pipeline.
//
// Main line:
//
//	INCART -> PENDING -> CONFIRMED -> SCHEDULED_PICKUP -> PICKINGUP -> PICKEDUP
//	  -> CHECKING -> CHECKED -> WASHING -> WASHED -> QUALITY_CHECKED
//	  -> SCHEDULED_DELIVERY -> DELIVERING -> DELIVERED -> COMPLETED
//
// Side branches:
//
//	PICKINGUP  -> PICKUPFAILED   -> SCHEDULED_PICKUP | CANCELLED
//	DELIVERING -> DELIVERYFAILED -> SCHEDULED_DELIVERY
//	PENDING | CONFIRMED -> CANCELLED
//	DELIVERED  -> COMPLAINT -> DELIVERED
//
// COMPLETED and CANCELLED are terminal.
type Status int

const (
	// Unknown catches uninitialized values and is never persisted.
	Unknown Status = iota
	InCart
	Pending
	Confirmed
	ScheduledPickup
	PickingUp
	PickedUp
	Checking
	Checked
	Washing
	Washed
	QualityChecked
	ScheduledDelivery
	Delivering
	Delivered
	Completed
	PickupFailed
	DeliveryFailed
	Cancelled
	Complaint
)

var statusNames = map[Status]string{
	InCart:            "INCART",
	Pending:           "PENDING",
	Confirmed:         "CONFIRMED",
	ScheduledPickup:   "SCHEDULED_PICKUP",
	PickingUp:         "PICKINGUP",
	PickedUp:          "PICKEDUP",
	Checking:          "CHECKING",
	Checked:           "CHECKED",
	Washing:           "WASHING",
	Washed:            "WASHED",
	QualityChecked:    "QUALITY_CHECKED",
	ScheduledDelivery: "SCHEDULED_DELIVERY",
	Delivering:        "DELIVERING",
	Delivered:         "DELIVERED",
	Completed:         "COMPLETED",
	PickupFailed:      "PICKUPFAILED",
	DeliveryFailed:    "DELIVERYFAILED",
	Cancelled:         "CANCELLED",
	Complaint:         "COMPLAINT",
}

var statusDescriptions = map[Status]string{
	InCart:            "Items are in the cart",
	Pending:           "Order placed, waiting for staff review",
	Confirmed:         "Order confirmed by staff",
	ScheduledPickup:   "Driver scheduled for pickup",
	PickingUp:         "Driver is on the way to pick up",
	PickedUp:          "Laundry picked up",
	Checking:          "Laundry is being checked",
	Checked:           "Laundry checked",
	Washing:           "Laundry is being washed",
	Washed:            "Laundry washed",
	QualityChecked:    "Quality check passed",
	ScheduledDelivery: "Driver scheduled for delivery",
	Delivering:        "Driver is on the way to deliver",
	Delivered:         "Laundry delivered",
	Completed:         "Order completed",
	PickupFailed:      "Pickup failed",
	DeliveryFailed:    "Delivery failed",
	Cancelled:         "Order cancelled",
	Complaint:         "Customer filed a complaint",
}

// transitions is the whole legal graph: current status -> statuses it may move to.
var transitions = map[Status][]Status{
	InCart:            {Pending},
	Pending:           {Confirmed, Cancelled},
	Confirmed:         {ScheduledPickup, Cancelled},
	ScheduledPickup:   {PickingUp},
	PickingUp:         {PickedUp, PickupFailed},
	PickupFailed:      {ScheduledPickup, Cancelled},
	PickedUp:          {Checking},
	Checking:          {Checked},
	Checked:           {Washing},
	Washing:           {Washed},
	Washed:            {QualityChecked},
	QualityChecked:    {ScheduledDelivery},
	ScheduledDelivery: {Delivering},
	Delivering:        {Delivered, DeliveryFailed},
	DeliveryFailed:    {ScheduledDelivery},
	Delivered:         {Completed, Complaint},
	Complaint:         {Delivered},
	Completed:         {},
	Cancelled:         {},
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", name))
}

// AllStatuses lists every valid status in pipeline order.
func AllStatuses() []Status {
	all := make([]Status, 0, len(statusNames))
	for s := InCart; s <= Complaint; s++ {
		all = append(all, s)
	}
	return all
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Description is the human readable text stored on history entries.
func (s Status) Description() string {
	return statusDescriptions[s]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// IsFailure marks the failure branches kept for reporting.
func (s Status) IsFailure() bool {
	return s == PickupFailed || s == DeliveryFailed
}

// IsScheduling reports whether s is one of the two driver scheduling statuses.
func (s Status) IsScheduling() bool {
	return s == ScheduledPickup || s == ScheduledDelivery
}

// IsWorkshop reports whether s is a staff step between pickup and delivery.
func (s Status) IsWorkshop() bool {
	switch s {
	case Checking, Checked, Washing, Washed, QualityChecked:
		return true
	default:
		return false
	}
}

// Successors returns a copy of the legal targets of s.
func (s Status) Successors() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// Predecessors returns every status that may move to s.
func (s Status) Predecessors() []Status {
	var out []Status
	for _, from := range AllStatuses() {
		if from.CanTransitionTo(s) {
			out = append(out, from)
		}
	}
	return out
}

// CanTransitionTo is the only legality check of the pipeline.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidStateError when target is not a legal successor.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidStateError("order", s.String(), target.String())
	}
	return nil
}

// AbsorbsScheduling reports whether a request to schedule target is already
// satisfied by s. Bulk driver assignment relies on this to avoid duplicate history:
// SCHEDULED_PICKUP is absorbed by SCHEDULED_PICKUP and PICKINGUP, and the
// delivery pair behaves the same way.
func (s Status) AbsorbsScheduling(target Status) bool {
	switch target {
	case ScheduledPickup:
		return s == ScheduledPickup || s == PickingUp
	case ScheduledDelivery:
		return s == ScheduledDelivery || s == Delivering
	default:
		return false
	}
}

// ValidateHistoryPath checks that statuses, in creation order, walk the legal graph
// starting at INCART.
func ValidateHistoryPath(statuses []Status) error {
	if len(statuses) == 0 {
		return nil
	}
	if statuses[0] != InCart {
		return errs.NewInvalidStateError("order history", "<start>", statuses[0].String())
	}
	for i := 1; i < len(statuses); i++ {
		if err := statuses[i-1].ValidateTransition(statuses[i]); err != nil {
			return fmt.Errorf("history entry %d: %w", i, err)
		}
	}
	return nil
}
