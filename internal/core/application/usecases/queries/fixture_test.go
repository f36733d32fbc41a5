package queries_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	db     *gorm.DB
	pg     *postgres.GormUnitOfWorkFactory
	clock  *testutil.Clock
	engine *lifecycle.Engine
}

func newFixture(t *testing.T) *fixture {
	pg, db := testutil.NewUnitOfWorkFactory(t)
	clock := testutil.NewClock(testStart)
	return &fixture{t: t, db: db, pg: pg, clock: clock, engine: lifecycle.NewEngine(clock)}
}

func (f *fixture) inTx(fn func(ctx context.Context, uow ports.UnitOfWork) error) {
	ctx := f.t.Context()
	uow := f.pg.Create()
	require.NoError(f.t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	require.NoError(f.t, fn(ctx, uow))
	require.NoError(f.t, uow.Commit(ctx))
}

func address(street string, lat, lng float64) kernel.Address {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	a, err := kernel.NewAddress(street, point)
	if err != nil {
		panic(err)
	}
	return a
}

type seed struct {
	emergency bool
	pickup    kernel.Address
	delivery  kernel.Address
	actor     *kernel.UUID
	path      []order.Status
}

// seedOrder places an order at the current clock time and walks it through
// s.path, which starts after PENDING.
func (f *fixture) seedOrder(s seed) kernel.UUID {
	customerID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, f.clock.Now())
	require.NoError(f.t, err)

	item, err := order.NewItem("wash-fold", 2, 7000)
	require.NoError(f.t, err)
	require.NoError(f.t, o.AddItem(item))
	if s.pickup.Street() == "" {
		s.pickup = address("Jl. Sudirman 1", -6.2, 106.8)
	}
	if s.delivery.Street() == "" {
		s.delivery = s.pickup
	}

	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		if _, err := f.engine.Create(ctx, uow, o, &customerID); err != nil {
			return err
		}
		if err := o.Place(s.pickup, s.delivery, s.emergency, order.Quote{Subtotal: o.Subtotal()}, f.clock.Now()); err != nil {
			return err
		}
		if _, err := f.engine.Apply(ctx, uow, o, lifecycle.TransitionRequest{OrderID: o.ID(), Target: order.Pending, Actor: &customerID}); err != nil {
			return err
		}
		for _, st := range s.path {
			if _, err := f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{OrderID: o.ID(), Target: st, Actor: s.actor}); err != nil {
				return fmt.Errorf("seed %s: %w", st, err)
			}
		}
		return nil
	})
	return o.ID()
}

func (f *fixture) addAssignment(orderID kernel.UUID, phase assignment.Phase, holder kernel.UUID) *assignment.Assignment {
	a, err := assignment.NewAssignment(orderID, phase, holder, nil, f.clock.Now())
	require.NoError(f.t, err)

	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.AssignmentRepository().Add(ctx, a)
	})
	return a
}

func (f *fixture) addAbsence(driverID kernel.UUID, start, end time.Time, reason string) *driver.Absence {
	window, err := kernel.NewTimeRange(start, end)
	require.NoError(f.t, err)
	a, err := driver.NewAbsence(driverID, window, reason, f.clock.Now())
	require.NoError(f.t, err)

	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.AbsenceRepository().Add(ctx, a)
	})
	return a
}

// memoryCache is a ports.HistoryCache over a map.
type memoryCache struct {
	mu     sync.Mutex
	values map[kernel.UUID][]byte
	hits   int
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[kernel.UUID][]byte)}
}

func (c *memoryCache) Get(_ context.Context, id kernel.UUID) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.values[id]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, id kernel.UUID, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[id] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, id)
	return nil
}
