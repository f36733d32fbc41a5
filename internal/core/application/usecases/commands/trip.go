package commands

import (
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// trip maps a driver phase onto the order statuses it drives.
type trip struct {
	scheduled order.Status
	underway  order.Status
	done      order.Status
	failed    order.Status
}

var trips = map[assignment.Phase]trip{
	assignment.Pickup: {
		scheduled: order.ScheduledPickup,
		underway:  order.PickingUp,
		done:      order.PickedUp,
		failed:    order.PickupFailed,
	},
	assignment.Delivery: {
		scheduled: order.ScheduledDelivery,
		underway:  order.Delivering,
		done:      order.Delivered,
		failed:    order.DeliveryFailed,
	},
}

func tripOf(phase assignment.Phase) (trip, error) {
	t, ok := trips[phase]
	if !ok {
		return trip{}, errs.NewValueIsInvalidError("phase " + phase.String() + " is not a driver phase")
	}
	return t, nil
}

// requireStatus returns an InvalidStateError unless o is in want.
func requireStatus(o *order.Order, want, target order.Status) error {
	if o.Status() != want {
		return errs.NewInvalidStateError("order", o.Status().String(), target.String())
	}
	return nil
}

func dedupe[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
