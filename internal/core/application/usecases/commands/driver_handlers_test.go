package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/assignment"
	"laundry/internal/core/domain/model/driver"
	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) assignHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(f.uow, f.engine, f.clock, services.NewAvailabilityChecker())
}

func TestAssignPickup_IsIdempotentPerOrder(t *testing.T) {
	f := newFixture(t)
	first := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed)
	second := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickupFailed)
	driverA, driverB, admin := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	h := f.assignHandler()

	cmd, err := commands.NewAssignPickupCommand([]kernel.UUID{first, second}, driverA, admin)
	require.NoError(t, err)
	results, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.False(t, r.Skipped)
	}
	assert.Equal(t, order.ScheduledPickup, f.order(first).Status())
	assert.Equal(t, order.ScheduledPickup, f.order(second).Status())
	historyLen := len(f.history(first))

	t.Run("same driver again is a conflict and writes nothing", func(t *testing.T) {
		results, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		for _, r := range results {
			require.ErrorIs(t, r.Err, errs.ErrConflict)
		}
		assert.Len(t, f.history(first), historyLen)
		assert.Len(t, f.assignments(first), 1)
	})

	t.Run("another driver replaces the unstarted assignment", func(t *testing.T) {
		reassign, _ := commands.NewAssignPickupCommand([]kernel.UUID{first}, driverB, admin)

		results, err := h.Handle(t.Context(), reassign)

		require.NoError(t, err)
		require.NoError(t, results[0].Err)
		assert.True(t, results[0].Skipped)
		assert.Len(t, f.history(first), historyLen, "reassignment adds no log entry")
		open, err := f.openAssignment(first, assignment.Pickup)
		require.NoError(t, err)
		assert.True(t, open.IsHeldBy(driverB))

		all := f.assignments(first)
		require.Len(t, all, 2, "the replaced assignment is kept")
		var withdrawn *assignment.Assignment
		for _, a := range all {
			if !a.IsHeldBy(driverB) {
				withdrawn = a
			}
		}
		require.NotNil(t, withdrawn)
		assert.Equal(t, assignment.StatusPickupWithdrawn, withdrawn.Status())
		assert.False(t, withdrawn.IsOpen())
		assert.NotNil(t, withdrawn.CompletedAt())
		assert.Contains(t, withdrawn.DeclineReason(), driverB.String())
		f.assertConsistent(first)
	})
}

func TestAssignPickup_RejectsPerOrder(t *testing.T) {
	f := newFixture(t)
	driverID, admin := kernel.NewUUID(), kernel.NewUUID()
	underway := f.pickingUp(kernel.NewUUID())
	pending := f.seedOrder(kernel.NewUUID(), order.Pending)
	confirmed := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed)
	h := f.assignHandler()

	cmd, _ := commands.NewAssignPickupCommand([]kernel.UUID{underway, pending, confirmed, kernel.NewUUID()}, driverID, admin)
	results, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.ErrorIs(t, results[0].Err, errs.ErrConflict)
	assert.ErrorIs(t, results[1].Err, errs.ErrInvalidState)
	assert.NoError(t, results[2].Err)
	assert.ErrorIs(t, results[3].Err, errs.ErrObjectNotFound)
	assert.Equal(t, order.Pending, f.order(pending).Status())
}

func TestAssignPickup_RejectsAbsentDriver(t *testing.T) {
	f := newFixture(t)
	driverID := kernel.NewUUID()
	window, err := kernel.NewTimeRange(f.clock.Now().Add(-time.Hour), f.clock.Now().Add(time.Hour))
	require.NoError(t, err)
	absence, err := driver.NewAbsence(driverID, window, "dentist", f.clock.Now())
	require.NoError(t, err)
	f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
		return uow.AbsenceRepository().Add(ctx, absence)
	})
	orderID := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed)

	cmd, _ := commands.NewAssignPickupCommand([]kernel.UUID{orderID}, driverID, kernel.NewUUID())
	h := f.assignHandler()
	results, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.ErrorIs(t, results[0].Err, errs.ErrConflict)
	assert.Equal(t, order.Confirmed, f.order(orderID).Status())
	assert.Empty(t, f.assignments(orderID))
}

func TestStartPickup(t *testing.T) {
	t.Run("should start the trip and the assignment together", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := f.scheduledPickup(driverID)
		h := commands.NewStartTripCommandHandler(f.uow, f.engine, f.clock)
		cmd, _ := commands.NewStartPickupCommand(orderID, driverID)

		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, order.PickingUp, f.order(orderID).Status())
		open, err := f.openAssignment(orderID, assignment.Pickup)
		require.NoError(t, err)
		assert.True(t, open.IsStarted())
		f.assertConsistent(orderID)
	})

	t.Run("should forbid another driver", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.scheduledPickup(kernel.NewUUID())
		h := commands.NewStartTripCommandHandler(f.uow, f.engine, f.clock)
		cmd, _ := commands.NewStartPickupCommand(orderID, kernel.NewUUID())

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
		assert.Equal(t, order.ScheduledPickup, f.order(orderID).Status())
	})

	t.Run("should reject a second trip of the same phase", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		f.pickingUp(driverID)
		orderID := f.scheduledPickup(driverID)
		h := commands.NewStartTripCommandHandler(f.uow, f.engine, f.clock)
		cmd, _ := commands.NewStartPickupCommand(orderID, driverID)

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrConflict)
		assert.Equal(t, order.ScheduledPickup, f.order(orderID).Status())
	})
}

func TestConfirmPickupArrival_EmitsNotificationOnly(t *testing.T) {
	f := newFixture(t)
	driverID := kernel.NewUUID()
	orderID := f.pickingUp(driverID)
	before := len(f.history(orderID))
	h := commands.NewConfirmArrivalCommandHandler(f.uow, f.clock)

	cmd, _ := commands.NewConfirmPickupArrivalCommand(orderID, driverID)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.PickingUp, f.order(orderID).Status())
	assert.Len(t, f.history(orderID), before)
	assert.Contains(t, f.outboxTopics(), event.TopicDriverArrived)

	other, _ := commands.NewConfirmPickupArrivalCommand(orderID, kernel.NewUUID())
	require.ErrorIs(t, h.Handle(t.Context(), other), errs.ErrForbidden)
}

func TestConfirmPickup_AttachesPhotos(t *testing.T) {
	f := newFixture(t)
	driverID := kernel.NewUUID()
	orderID := f.pickingUp(driverID)
	h := commands.NewCompleteTripCommandHandler(f.uow, f.engine, f.clock, f.storage)

	cmd, err := commands.NewConfirmPickupCommand(orderID, driverID, "two bags", []ports.PhotoUpload{photo("bag1.jpg"), photo("bag2.jpg")})
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.PickedUp, f.order(orderID).Status())
	entries := f.history(orderID)
	last := entries[len(entries)-1]
	assert.Equal(t, order.PickedUp, last.Status())
	assert.Len(t, last.Photos(), 2)
	assert.Equal(t, 2, f.storage.stored())
	list := f.assignments(orderID)
	require.Len(t, list, 1)
	assert.Equal(t, assignment.StatusPickupSuccess, list[0].Status())
	f.assertConsistent(orderID)
}

func TestCancelPickupAssignment_IsEvidenceGated(t *testing.T) {
	t.Run("zero photos touch nothing", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := f.pickingUp(driverID)
		before := len(f.history(orderID))
		h := commands.NewFailTripCommandHandler(f.uow, f.engine, f.clock, f.storage)

		_, err := commands.NewCancelPickupAssignmentCommand(orderID, driverID, "nobody home", nil)
		require.ErrorIs(t, err, commands.ErrEvidenceIsRequired)
		assert.True(t, errs.IsValidation(err))

		err = h.Handle(t.Context(), commands.FailTripCommand{})
		require.ErrorIs(t, err, commands.ErrFailTripCommandIsNotConstructed)

		assert.Equal(t, order.PickingUp, f.order(orderID).Status())
		assert.Len(t, f.history(orderID), before)
		_, openErr := f.openAssignment(orderID, assignment.Pickup)
		require.NoError(t, openErr)
		assert.Zero(t, f.storage.stored())
	})

	t.Run("failure is recorded with the evidence", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := f.pickingUp(driverID)
		h := commands.NewFailTripCommandHandler(f.uow, f.engine, f.clock, f.storage)

		cmd, _ := commands.NewCancelPickupAssignmentCommand(orderID, driverID, "nobody home", []ports.PhotoUpload{photo("door.jpg")})
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, order.PickupFailed, f.order(orderID).Status())
		entries := f.history(orderID)
		last := entries[len(entries)-1]
		assert.True(t, last.IsFail())
		assert.Equal(t, "nobody home", last.Notes())
		require.Len(t, last.Photos(), 1)
		list := f.assignments(orderID)
		require.Len(t, list, 1)
		assert.Equal(t, assignment.StatusPickupFailed, list[0].Status())
		assert.Equal(t, "nobody home", list[0].DeclineReason())
		f.assertConsistent(orderID)
	})

	t.Run("rejected transition deletes uploaded photos", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := f.pickingUp(driverID)
		h := commands.NewFailTripCommandHandler(f.uow, f.engine, f.clock, f.storage)

		cmd, _ := commands.NewCancelPickupAssignmentCommand(orderID, kernel.NewUUID(), "nobody home", []ports.PhotoUpload{photo("a.jpg"), photo("b.jpg")})
		err := h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Zero(t, f.storage.stored())
		assert.Len(t, f.storage.deletions, 2)
		assert.Equal(t, order.PickingUp, f.order(orderID).Status())
	})

	t.Run("failed upload leaves no files and no state", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := f.pickingUp(driverID)
		f.storage.failOn = "b.jpg"
		h := commands.NewFailTripCommandHandler(f.uow, f.engine, f.clock, f.storage)

		cmd, _ := commands.NewCancelPickupAssignmentCommand(orderID, driverID, "nobody home", []ports.PhotoUpload{photo("a.jpg"), photo("b.jpg")})
		err := h.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.Zero(t, f.storage.stored())
		assert.Equal(t, order.PickingUp, f.order(orderID).Status())
	})
}

func TestCancelAssignment_RevertsScheduling(t *testing.T) {
	f := newFixture(t)
	driverID, admin := kernel.NewUUID(), kernel.NewUUID()
	pickup := f.seedOrder(kernel.NewUUID(), order.Pending, order.Confirmed)
	delivery := f.seedOrder(kernel.NewUUID(),
		order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickedUp,
		order.Checking, order.Checked, order.Washing, order.Washed, order.QualityChecked)

	assign := f.assignHandler()
	pickupCmd, _ := commands.NewAssignPickupCommand([]kernel.UUID{pickup}, driverID, admin)
	pickupResults, err := assign.Handle(t.Context(), pickupCmd)
	require.NoError(t, err)
	deliveryCmd, _ := commands.NewAssignDeliveryCommand([]kernel.UUID{delivery}, driverID, admin)
	deliveryResults, err := assign.Handle(t.Context(), deliveryCmd)
	require.NoError(t, err)
	require.NoError(t, pickupResults[0].Err)
	require.NoError(t, deliveryResults[0].Err)

	h := commands.NewCancelAssignmentCommandHandler(f.uow, f.engine)
	cmd, err := commands.NewCancelAssignmentCommand(
		[]kernel.UUID{pickupResults[0].AssignmentID, deliveryResults[0].AssignmentID}, admin)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Confirmed, f.order(pickup).Status())
	assert.Equal(t, order.QualityChecked, f.order(delivery).Status())
	assert.Empty(t, f.assignments(pickup))
	assert.Empty(t, f.assignments(delivery))
	f.assertConsistent(pickup)
	f.assertConsistent(delivery)

	t.Run("started assignments cannot be withdrawn", func(t *testing.T) {
		orderID := f.pickingUp(driverID)
		started, err := f.openAssignment(orderID, assignment.Pickup)
		require.NoError(t, err)
		cmd, _ := commands.NewCancelAssignmentCommand([]kernel.UUID{started.ID()}, admin)

		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidState)
		assert.Equal(t, order.PickingUp, f.order(orderID).Status())
	})
}

func TestDeliveryTrip(t *testing.T) {
	readyForDelivery := func(f *fixture) kernel.UUID {
		return f.seedOrder(kernel.NewUUID(),
			order.Pending, order.Confirmed, order.ScheduledPickup, order.PickingUp, order.PickedUp,
			order.Checking, order.Checked, order.Washing, order.Washed, order.QualityChecked)
	}
	assignDelivery := func(f *fixture, orderID, driverID kernel.UUID) {
		cmd, err := commands.NewAssignDeliveryCommand([]kernel.UUID{orderID}, driverID, kernel.NewUUID())
		require.NoError(t, err)
		h := f.assignHandler()
		results, err := h.Handle(t.Context(), cmd)
		require.NoError(t, err)
		require.NoError(t, results[0].Err)
	}
	start := func(f *fixture, orderID, driverID kernel.UUID) {
		cmd, err := commands.NewStartDeliveryCommand(orderID, driverID)
		require.NoError(t, err)
		h := commands.NewStartTripCommandHandler(f.uow, f.engine, f.clock)
		require.NoError(t, h.Handle(t.Context(), cmd))
	}

	t.Run("should deliver with arrival notice and photos", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := readyForDelivery(f)

		assignDelivery(f, orderID, driverID)
		assert.Equal(t, order.ScheduledDelivery, f.order(orderID).Status())
		start(f, orderID, driverID)
		assert.Equal(t, order.Delivering, f.order(orderID).Status())

		arrived, _ := commands.NewConfirmDeliveryArrivalCommand(orderID, driverID)
		arrival := commands.NewConfirmArrivalCommandHandler(f.uow, f.clock)
		require.NoError(t, arrival.Handle(t.Context(), arrived))
		assert.Contains(t, f.outboxTopics(), event.TopicDriverArrived)

		done, err := commands.NewConfirmDeliveryCommand(orderID, driverID, "left with doorman", []ports.PhotoUpload{photo("door.jpg")})
		require.NoError(t, err)
		complete := commands.NewCompleteTripCommandHandler(f.uow, f.engine, f.clock, f.storage)
		require.NoError(t, complete.Handle(t.Context(), done))

		assert.Equal(t, order.Delivered, f.order(orderID).Status())
		_, openErr := f.openAssignment(orderID, assignment.Delivery)
		require.ErrorIs(t, openErr, errs.ErrObjectNotFound)
		f.assertConsistent(orderID)
	})

	t.Run("should allow a new delivery after a failed one", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		orderID := readyForDelivery(f)
		assignDelivery(f, orderID, driverID)
		start(f, orderID, driverID)

		failed, err := commands.NewCancelDeliveryAssignmentCommand(orderID, driverID, "wrong address", []ports.PhotoUpload{photo("gate.jpg")})
		require.NoError(t, err)
		fail := commands.NewFailTripCommandHandler(f.uow, f.engine, f.clock, f.storage)
		require.NoError(t, fail.Handle(t.Context(), failed))
		assert.Equal(t, order.DeliveryFailed, f.order(orderID).Status())

		assignDelivery(f, orderID, driverID)
		assert.Equal(t, order.ScheduledDelivery, f.order(orderID).Status())
		f.assertConsistent(orderID)
	})

	t.Run("should start one delivery at a time", func(t *testing.T) {
		f := newFixture(t)
		driverID := kernel.NewUUID()
		f.pickingUp(driverID)
		first, second := readyForDelivery(f), readyForDelivery(f)
		assignDelivery(f, first, driverID)
		assignDelivery(f, second, driverID)

		start(f, first, driverID)
		cmd, _ := commands.NewStartDeliveryCommand(second, driverID)
		h := commands.NewStartTripCommandHandler(f.uow, f.engine, f.clock)
		err := h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Delivering, f.order(first).Status())
		assert.Equal(t, order.ScheduledDelivery, f.order(second).Status())
	})
}
