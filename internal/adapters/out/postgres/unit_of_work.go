// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// The Unit of Work maintains the list of aggregates touched by one business
// operation and coordinates writing them out in a single transaction.
//
// Key Features:
//   - Transaction management across the order, history, assignment, absence and
//     outbox repositories
//   - Aggregate tracking, reported to an optional commit hook
//   - Configurable isolation level
//   - Serialization failures and unique violations surfaced as errs.ConflictError
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db, WithIsolation(sql.LevelSerializable))
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// change o, append history, write outbox rows ...
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines use separate instances
//   - Repositories must be obtained after Begin, otherwise they run outside the
//     transaction on the pool connection
//   - GetForUpdate takes a row lock so two transitions of one order serialize
package postgres

import (
	"context"
	"database/sql"

	"laundry/internal/adapters/out/postgres/absencerepo"
	"laundry/internal/adapters/out/postgres/assignmentrepo"
	"laundry/internal/adapters/out/postgres/dberr"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/outboxrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CommitHook receives the ids of the orders touched by a committed unit of work.
type CommitHook func(ctx context.Context, orderIDs []kernel.UUID)

// Option configures units of work created by a factory.
type Option func(*GormUnitOfWorkFactory)

// WithIsolation sets the isolation level of every transaction. sql.LevelDefault
// keeps the server default.
func WithIsolation(level sql.IsolationLevel) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.isolation = level
	}
}

// WithCommitHook registers a function run after each successful commit.
func WithCommitHook(hook CommitHook) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.hooks = append(f.hooks, hook)
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work instance.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	isolation sql.IsolationLevel
	hooks     []CommitHook
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, WithIsolation(sql.LevelRepeatableRead))
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db, isolation: sql.LevelDefault}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork instance with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		isolation:         f.isolation,
		hooks:             f.hooks,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// modified inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	isolation         sql.IsolationLevel
	hooks             []CommitHook
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and do not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	var opts []*sql.TxOptions
	if uow.isolation != sql.LevelDefault {
		opts = append(opts, &sql.TxOptions{Isolation: uow.isolation})
	}

	tx := uow.db.WithContext(ctx).Begin(opts...)
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes all changes made within the current transaction and then runs
// the commit hooks with the touched order ids. The transaction is closed either way.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active, and
// errs.ConflictError when the database aborted the transaction because a concurrent
// one won.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return dberr.Translate(err, "transaction")
	}

	if len(uow.hooks) > 0 {
		ids := uow.trackedOrderIDs()
		for _, hook := range uow.hooks {
			hook(ctx, ids)
		}
	}
	return nil
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after Commit a harmless no-op.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current transaction if
// one is active. Added and updated orders are tracked.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return orderrepo.NewGormHistoryRepository(uow.conn())
}

// AssignmentRepository tracks assignments under the id of their order.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AbsenceRepository() ports.AbsenceRepository {
	return absencerepo.NewGormAbsenceRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repository implementations call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// trackedOrderIDs returns the distinct tracked ids in first-seen order.
func (uow *GormUnitOfWork) trackedOrderIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(uow.trackedAggregates))
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return ids
}
