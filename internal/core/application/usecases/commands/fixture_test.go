package commands_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/outboxrepo"
	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

type uowFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type orderUoWFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u orderUoWFactory) Create() commands.OrderUoW { return u.f.Create() }

type absenceUoWFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u absenceUoWFactory) Create() commands.AbsenceUoW { return u.f.Create() }

type outboxUoWFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u outboxUoWFactory) Create() commands.OutboxUoW { return u.f.Create() }

// memoryStorage is a ports.PhotoStorage that keeps files in a map.
type memoryStorage struct {
	mu        sync.Mutex
	files     map[string][]byte
	failOn    string
	uploaded  int
	deletions []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, photo ports.PhotoUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if photo.Filename == s.failOn {
		return "", errors.New("disk full")
	}
	s.uploaded++
	url := fmt.Sprintf("/photos/%d-%s", s.uploaded, photo.Filename)
	s.files[url] = photo.Content
	return url, nil
}

func (s *memoryStorage) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, url)
	s.deletions = append(s.deletions, url)
	return nil
}

func (s *memoryStorage) stored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type fixture struct {
	t       *testing.T
	db      *gorm.DB
	pg      *postgres.GormUnitOfWorkFactory
	clock   *testutil.Clock
	engine  *lifecycle.Engine
	storage *memoryStorage

	uow        commands.UoWFactory
	orderUoW   commands.OrderUoWFactory
	absenceUoW commands.AbsenceUoWFactory
}

func newFixture(t *testing.T) *fixture {
	pg, db := testutil.NewUnitOfWorkFactory(t)
	clock := testutil.NewClock(testStart)
	return &fixture{
		t:          t,
		db:         db,
		pg:         pg,
		clock:      clock,
		engine:     lifecycle.NewEngine(clock),
		storage:    newMemoryStorage(),
		uow:        uowFactory{pg},
		orderUoW:   orderUoWFactory{pg},
		absenceUoW: absenceUoWFactory{pg},
	}
}

func (f *fixture) inTx(fn func(ctx context.Context, uow ports.UnitOfWork) error) {
	ctx := f.t.Context()
	uow := f.pg.Create()
	require.NoError(f.t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	require.NoError(f.t, fn(ctx, uow))
	require.NoError(f.t, uow.Commit(ctx))
}

// seedOrder creates an order for customerID and walks it through path.
func (f *fixture) seedOrder(customerID kernel.UUID, path ...order.Status) kernel.UUID {
	o, err := order.NewOrder(kernel.NewUUID(), customerID, f.clock.Now())
	require.NoError(f.t, err)

	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		if _, err := f.engine.Create(ctx, uow, o, &customerID); err != nil {
			return err
		}
		for _, s := range path {
			if _, err := f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{OrderID: o.ID(), Target: s}); err != nil {
				return fmt.Errorf("seed %s: %w", s, err)
			}
		}
		return nil
	})
	return o.ID()
}

func (f *fixture) addAssignment(orderID kernel.UUID, phase assignment.Phase, holder kernel.UUID, started bool) *assignment.Assignment {
	var by *kernel.UUID
	if phase.IsDriverPhase() {
		admin := kernel.NewUUID()
		by = &admin
	}
	a, err := assignment.NewAssignment(orderID, phase, holder, by, f.clock.Now())
	require.NoError(f.t, err)
	if started {
		require.NoError(f.t, a.Start(holder, f.clock.Now()))
	}

	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.AssignmentRepository().Add(ctx, a)
	})
	return a
}

// scheduledPickup returns an order in SCHEDULED_PICKUP held by driverID.
func (f *fixture) scheduledPickup(driverID kernel.UUID) kernel.UUID {
	id := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed, order.ScheduledPickup)
	f.addAssignment(id, assignment.Pickup, driverID, false)
	return id
}

// pickingUp returns an order in PICKINGUP whose started assignment is held by driverID.
func (f *fixture) pickingUp(driverID kernel.UUID) kernel.UUID {
	id := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp)
	f.addAssignment(id, assignment.Pickup, driverID, true)
	return id
}

func (f *fixture) order(id kernel.UUID) *order.Order {
	o, err := f.pg.Create().OrderRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return o
}

func (f *fixture) history(id kernel.UUID) []*order.HistoryEntry {
	entries, err := f.pg.Create().HistoryRepository().List(f.t.Context(), id)
	require.NoError(f.t, err)
	return entries
}

func (f *fixture) statuses(id kernel.UUID) []order.Status {
	return order.Statuses(f.history(id))
}

func (f *fixture) assignments(orderID kernel.UUID) []*assignment.Assignment {
	list, err := f.pg.Create().AssignmentRepository().ListByOrder(f.t.Context(), orderID)
	require.NoError(f.t, err)
	return list
}

func (f *fixture) openAssignment(orderID kernel.UUID, phase assignment.Phase) (*assignment.Assignment, error) {
	return f.pg.Create().AssignmentRepository().GetOpen(f.t.Context(), orderID, phase)
}

func (f *fixture) outboxTopics() []string {
	var dtos []outboxrepo.EventDTO
	require.NoError(f.t, f.db.Order("created_at").Find(&dtos).Error)
	topics := make([]string, 0, len(dtos))
	for _, d := range dtos {
		topics = append(topics, d.Topic)
	}
	return topics
}

// assertConsistent checks the log is a legal path ending at orders.status.
func (f *fixture) assertConsistent(id kernel.UUID) {
	entries := f.history(id)
	require.NotEmpty(f.t, entries)
	require.NoError(f.t, order.ValidateHistoryPath(order.Statuses(entries)))
	assert.Equal(f.t, entries[len(entries)-1].Status(), f.order(id).Status())
}

func photo(name string) ports.PhotoUpload {
	return ports.PhotoUpload{Filename: name, Content: []byte("jpeg:" + name)}
}
