package assignment

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Phase is the kind of work an assignment claims. Each phase has its own sub-state
// machine and at most one open assignment per order at a time.
type Phase int

const (
	UnknownPhase Phase = iota
	// Processing is the staff review that ends with the order CONFIRMED.
	Processing
	Pickup
	Delivery
)

var phaseNames = map[Phase]string{
	Processing: "processing",
	Pickup:     "pickup",
	Delivery:   "delivery",
}

func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if n == name {
			return p, nil
		}
	}
	return UnknownPhase, errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%q is not a known phase", name))
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Phase) Validate() error {
	if _, ok := phaseNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("phase", fmt.Errorf("%d is not a valid phase", p))
	}
	return nil
}

// IsDriverPhase reports whether the phase is driven by a driver trip.
func (p Phase) IsDriverPhase() bool {
	return p == Pickup || p == Delivery
}

// Status is the sub-state of one assignment.
type Status int

const (
	UnknownStatus Status = iota
	StatusProcessing
	StatusSuccess
	// StatusProcessingCancelled marks a processing claim released before confirmation.
	StatusProcessingCancelled
	StatusAssignedPickup
	StatusPickupSuccess
	StatusPickupFailed
	StatusAssignedDelivery
	StatusDeliverySuccess
	StatusDeliveryFailed
	// StatusPickupWithdrawn and StatusDeliveryWithdrawn close an unstarted driver
	// assignment handed over to another driver.
	StatusPickupWithdrawn
	StatusDeliveryWithdrawn
)

var statusNames = map[Status]string{
	StatusProcessing:          "PROCESSING",
	StatusSuccess:             "SUCCESS",
	StatusProcessingCancelled: "PROCESSING_CANCELLED",
	StatusAssignedPickup:      "ASSIGNED_PICKUP",
	StatusPickupSuccess:       "PICKUP_SUCCESS",
	StatusPickupFailed:        "PICKUP_FAILED",
	StatusAssignedDelivery:    "ASSIGNED_DELIVERY",
	StatusDeliverySuccess:     "DELIVERY_SUCCESS",
	StatusDeliveryFailed:      "DELIVERY_FAILED",
	StatusPickupWithdrawn:     "PICKUP_WITHDRAWN",
	StatusDeliveryWithdrawn:   "DELIVERY_WITHDRAWN",
}

// phaseMachine describes the sub-state machine of one phase.
type phaseMachine struct {
	open        Status
	success     Status
	failure     Status
	withdrawn   Status
	transitions map[Status][]Status
}

func (m phaseMachine) owns(s Status) bool {
	if s == UnknownStatus {
		return false
	}
	return s == m.open || s == m.success || s == m.failure || s == m.withdrawn
}

var machines = map[Phase]phaseMachine{
	Processing: {
		open:    StatusProcessing,
		success: StatusSuccess,
		failure: StatusProcessingCancelled,
		transitions: map[Status][]Status{
			StatusProcessing: {StatusSuccess, StatusProcessingCancelled},
		},
	},
	Pickup: {
		open:      StatusAssignedPickup,
		success:   StatusPickupSuccess,
		failure:   StatusPickupFailed,
		withdrawn: StatusPickupWithdrawn,
		transitions: map[Status][]Status{
			StatusAssignedPickup: {StatusPickupSuccess, StatusPickupFailed, StatusPickupWithdrawn},
		},
	},
	Delivery: {
		open:      StatusAssignedDelivery,
		success:   StatusDeliverySuccess,
		failure:   StatusDeliveryFailed,
		withdrawn: StatusDeliveryWithdrawn,
		transitions: map[Status][]Status{
			StatusAssignedDelivery: {StatusDeliverySuccess, StatusDeliveryFailed, StatusDeliveryWithdrawn},
		},
	},
}

func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%q is not a known status", name))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsOpen reports whether s is the non-terminal sub-state of its phase.
func (s Status) IsOpen() bool {
	return s == StatusProcessing || s == StatusAssignedPickup || s == StatusAssignedDelivery
}

// Phase returns the phase s belongs to.
func (s Status) Phase() Phase {
	for p, m := range machines {
		if m.owns(s) {
			return p
		}
	}
	return UnknownPhase
}

// OpenStatus is the sub-state every new assignment of the phase starts in.
func (p Phase) OpenStatus() Status {
	return machines[p].open
}

func (p Phase) SuccessStatus() Status {
	return machines[p].success
}

func (p Phase) FailureStatus() Status {
	return machines[p].failure
}

// WithdrawnStatus is UnknownStatus for processing, which has no withdrawal.
func (p Phase) WithdrawnStatus() Status {
	return machines[p].withdrawn
}

// CanTransitionTo checks the phase table of s.
func (s Status) CanTransitionTo(target Status) bool {
	m, ok := machines[s.Phase()]
	if !ok {
		return false
	}
	for _, next := range m.transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
