// Package assignment models claims of work on an order: staff processing claims and
// driver pickup and delivery assignments.
//
// Each phase runs its own small sub-state machine:
//
//	processing: PROCESSING -> SUCCESS | PROCESSING_CANCELLED
//	pickup:     ASSIGNED_PICKUP -> PICKUP_SUCCESS | PICKUP_FAILED | PICKUP_WITHDRAWN
//	delivery:   ASSIGNED_DELIVERY -> DELIVERY_SUCCESS | DELIVERY_FAILED | DELIVERY_WITHDRAWN
//
// At most one assignment per order and phase is open at a time. The aggregate does not
// see other assignments, so that rule is enforced by storage (a partial unique index)
// and by the command handlers.
package assignment
