package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/outboxrepo"
	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engineFixture struct {
	t       *testing.T
	db      *gorm.DB
	factory *postgres.GormUnitOfWorkFactory
	clock   *testutil.Clock
	engine  *lifecycle.Engine
}

func newFixture(t *testing.T) *engineFixture {
	factory, db := testutil.NewUnitOfWorkFactory(t)
	clock := testutil.NewClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	return &engineFixture{t: t, db: db, factory: factory, clock: clock, engine: lifecycle.NewEngine(clock)}
}

// inTx runs fn in a committed unit of work.
func (f *engineFixture) inTx(fn func(ctx context.Context, uow ports.UnitOfWork) error) error {
	ctx := f.t.Context()
	uow := f.factory.Create()
	require.NoError(f.t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	if err := fn(ctx, uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (f *engineFixture) newOrder() kernel.UUID {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), f.clock.Now())
	require.NoError(f.t, err)
	require.NoError(f.t, f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		_, err := f.engine.Create(ctx, uow, o, nil)
		return err
	}))
	return o.ID()
}

func (f *engineFixture) transition(id kernel.UUID, target order.Status, actor *kernel.UUID) (lifecycle.Outcome, error) {
	var out lifecycle.Outcome
	err := f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		var err error
		out, err = f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{OrderID: id, Target: target, Actor: actor})
		return err
	})
	return out, err
}

func (f *engineFixture) walk(id kernel.UUID, path ...order.Status) {
	for _, s := range path {
		f.clock.Advance(time.Minute)
		_, err := f.transition(id, s, nil)
		require.NoError(f.t, err, "transition to %s", s)
	}
}

func (f *engineFixture) history(id kernel.UUID) []*order.HistoryEntry {
	uow := f.factory.Create()
	entries, err := uow.HistoryRepository().List(f.t.Context(), id)
	require.NoError(f.t, err)
	return entries
}

func (f *engineFixture) status(id kernel.UUID) order.Status {
	uow := f.factory.Create()
	o, err := uow.OrderRepository().Get(f.t.Context(), id)
	require.NoError(f.t, err)
	return o.Status()
}

func (f *engineFixture) outboxCount() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&outboxrepo.EventDTO{}).Count(&n).Error)
	return n
}

func (f *engineFixture) assertConsistent(id kernel.UUID) {
	entries := f.history(id)
	require.NotEmpty(f.t, entries)
	require.NoError(f.t, order.ValidateHistoryPath(order.Statuses(entries)))
	assert.Equal(f.t, entries[len(entries)-1].Status(), f.status(id), "orders.status must equal the latest log entry")
}

var mainLine = []order.Status{
	order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickedUp,
	order.Checking, order.Checked, order.Washing, order.Washed, order.QualityChecked,
	order.ScheduledDelivery, order.Delivering, order.Delivered, order.Completed,
}

func TestEngine_MainLineKeepsLogMonotonic(t *testing.T) {
	f := newFixture(t)
	id := f.newOrder()

	f.walk(id, mainLine...)

	entries := f.history(id)
	assert.Equal(t, append([]order.Status{order.InCart}, mainLine...), order.Statuses(entries))
	f.assertConsistent(id)
	assert.EqualValues(t, len(mainLine)+1, f.outboxCount())
}

func TestEngine_FailureLoops(t *testing.T) {
	f := newFixture(t)
	id := f.newOrder()

	f.walk(id,
		order.Pending, order.Confirmed,
		order.ScheduledPickup, order.PickingUp, order.PickupFailed,
		order.ScheduledPickup, order.PickingUp, order.PickedUp,
		order.Checking, order.Checked, order.Washing, order.Washed, order.QualityChecked,
		order.ScheduledDelivery, order.Delivering, order.DeliveryFailed,
		order.ScheduledDelivery, order.Delivering, order.Delivered,
		order.Complaint, order.Delivered, order.Completed,
	)

	f.assertConsistent(id)
}

func TestEngine_IllegalTransitionLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name   string
		path   []order.Status
		target order.Status
	}{
		{"skip ahead", []order.Status{order.Pending}, order.Washing},
		{"backwards", []order.Status{order.Pending, order.Confirmed}, order.Pending},
		{"leave terminal", []order.Status{order.Pending, order.Cancelled}, order.Confirmed},
		{"cancel after pickup", []order.Status{order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickedUp}, order.Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.newOrder()
			f.walk(id, tt.path...)
			before := len(f.history(id))
			events := f.outboxCount()

			_, err := f.transition(id, tt.target, nil)

			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Len(t, f.history(id), before)
			assert.Equal(t, events, f.outboxCount())
			f.assertConsistent(id)
		})
	}
}

func TestEngine_SchedulingIsAbsorbed(t *testing.T) {
	tests := []struct {
		name   string
		path   []order.Status
		target order.Status
	}{
		{"scheduled pickup", []order.Status{order.Pending, order.Confirmed, order.ScheduledPickup}, order.ScheduledPickup},
		{"picking up", []order.Status{order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp}, order.ScheduledPickup},
		{"scheduled delivery", mainLine[:11], order.ScheduledDelivery},
		{"delivering", mainLine[:12], order.ScheduledDelivery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.newOrder()
			f.walk(id, tt.path...)
			before := len(f.history(id))

			out, err := f.transition(id, tt.target, nil)

			require.NoError(t, err)
			assert.True(t, out.Skipped)
			assert.Nil(t, out.Entry)
			assert.Len(t, f.history(id), before)
			f.assertConsistent(id)
		})
	}
}

func TestEngine_TransitionRecordsActorNotesAndPhotos(t *testing.T) {
	f := newFixture(t)
	id := f.newOrder()
	f.walk(id, order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp)
	driverID := kernel.NewUUID()

	var out lifecycle.Outcome
	require.NoError(t, f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		var err error
		out, err = f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{
			OrderID: id,
			Target:  order.PickupFailed,
			Actor:   &driverID,
			Notes:   "  nobody home ",
			IsFail:  true,
			Photos:  []string{"/photos/a.jpg", "", "/photos/b.jpg"},
		})
		return err
	}))

	require.NotNil(t, out.Entry)
	assert.NotZero(t, out.Entry.ID())

	latest := f.history(id)[len(f.history(id))-1]
	assert.Equal(t, out.Entry.ID(), latest.ID())
	assert.Equal(t, "nobody home", latest.Notes())
	assert.True(t, latest.IsFail())
	assert.True(t, latest.HasActor(driverID))
	require.Len(t, latest.Photos(), 2)
	assert.Equal(t, "/photos/a.jpg", latest.Photos()[0].URL())
}

func TestEngine_RevertScheduling(t *testing.T) {
	tests := []struct {
		name     string
		path     []order.Status
		expected order.Status
	}{
		{"first pickup", []order.Status{order.Pending, order.Confirmed, order.ScheduledPickup}, order.Confirmed},
		{"after failed pickup", []order.Status{order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickupFailed, order.ScheduledPickup}, order.PickupFailed},
		{"delivery", mainLine[:11], order.QualityChecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.newOrder()
			f.walk(id, tt.path...)

			var previous *order.HistoryEntry
			require.NoError(t, f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
				o, err := uow.OrderRepository().GetForUpdate(ctx, id)
				if err != nil {
					return err
				}
				previous, err = f.engine.RevertScheduling(ctx, uow, o)
				return err
			}))

			assert.Equal(t, tt.expected, previous.Status())
			assert.Equal(t, tt.expected, f.status(id))
			f.assertConsistent(id)
		})
	}

	t.Run("not scheduled", func(t *testing.T) {
		f := newFixture(t)
		id := f.newOrder()
		f.walk(id, order.Pending, order.Confirmed)

		err := f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
			o, err := uow.OrderRepository().GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			_, err = f.engine.RevertScheduling(ctx, uow, o)
			return err
		})

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Confirmed, f.status(id))
	})
}

func TestEngine_AmendCheckingNotes(t *testing.T) {
	f := newFixture(t)
	id := f.newOrder()
	staff := kernel.NewUUID()
	f.walk(id, mainLine[:5]...)
	_, err := f.transition(id, order.Checking, &staff)
	require.NoError(t, err)

	amend := func(actor kernel.UUID, notes string, photos ...string) error {
		return f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
			_, err := f.engine.AmendCheckingNotes(ctx, uow, id, actor, notes, photos)
			return err
		})
	}

	before := f.outboxCount()
	require.NoError(t, amend(staff, "stain on collar", "/photos/collar.jpg"))
	require.NoError(t, amend(staff, "button missing"))
	assert.Equal(t, before+2, f.outboxCount())
	require.ErrorIs(t, amend(kernel.NewUUID(), "not mine"), errs.ErrForbidden)

	latest := f.history(id)[len(f.history(id))-1]
	assert.Equal(t, order.Checking, latest.Status())
	assert.Equal(t, "stain on collar\nbutton missing", latest.Notes())
	assert.Len(t, latest.Photos(), 1)

	f.walk(id, order.Checked)
	require.ErrorIs(t, amend(staff, "too late"), errs.ErrInvalidState)
}
