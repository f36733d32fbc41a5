// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the status log within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// OutboxRepoFactory provides access to the event outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	AbsenceRepoFactory interface {
		AbsenceRepository() ports.AbsenceRepository
	}

	// OrderUoW manages transactions for operations that touch only an order and
	// its status log. It satisfies lifecycle.Repositories.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AbsenceUoW manages transactions for driver absence windows. Open assignments
	// are read in the same transaction to reject absences during active work.
	AbsenceUoW interface {
		TxManager
		AssignmentRepoFactory
		AbsenceRepoFactory
	}

	// AbsenceUoWFactory creates new absence unit of work instances.
	AbsenceUoWFactory interface {
		Create() AbsenceUoW
	}

	// OutboxUoW reads and marks outbox rows. The relay uses it without Begin, so
	// every mark is its own statement and survives a crash mid-batch.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW manages transactions across orders, assignments and absences.
	// Used by the coordinator commands that pair an assignment change with an
	// order transition.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   a, err := uow.AssignmentRepository().GetOpen(ctx, orderID, assignment.Pickup)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		OutboxRepoFactory
		AssignmentRepoFactory
		AbsenceRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
