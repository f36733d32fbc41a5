package queries_test

import (
	"context"
	"errors"
	"testing"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyQuery(t *testing.T, id kernel.UUID) queries.GetOrderHistoryQuery {
	q, err := queries.NewGetOrderHistoryQuery(id)
	require.NoError(t, err)
	return q
}

func TestGetOrderHistoryQueryHandler_Handle(t *testing.T) {
	t.Run("renders the timeline with notes actors and photos", func(t *testing.T) {
		f := newFixture(t)
		staff := kernel.NewUUID()
		id := f.seedOrder(seed{actor: &staff, path: []order.Status{order.Confirmed}})
		f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
			_, err := f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{
				OrderID: id,
				Target:  order.Cancelled,
				Actor:   &staff,
				Notes:   "customer asked",
				Photos:  []string{"/photos/a.jpg", "/photos/b.jpg"},
			})
			return err
		})

		got, err := queries.NewGetOrderHistoryQueryHandler(f.db, nil, nil).Handle(t.Context(), historyQuery(t, id))

		require.NoError(t, err)
		assert.Equal(t, id.String(), got.OrderID)
		assert.Equal(t, order.Cancelled.String(), got.Status)
		require.Len(t, got.Entries, 4)
		statuses := make([]string, 0, len(got.Entries))
		for _, e := range got.Entries {
			statuses = append(statuses, e.Status)
		}
		assert.Equal(t, []string{"INCART", "PENDING", "CONFIRMED", "CANCELLED"}, statuses)

		last := got.Entries[3]
		assert.Equal(t, "customer asked", last.Notes)
		assert.Equal(t, staff.String(), last.UpdatedBy)
		assert.Equal(t, order.Cancelled.Description(), last.Description)
		assert.Equal(t, []string{"/photos/a.jpg", "/photos/b.jpg"}, last.Photos)
		assert.Empty(t, got.Entries[0].Photos)
		assert.Equal(t, testStart, last.CreatedAt)
	})

	t.Run("second read is served from the cache until invalidated", func(t *testing.T) {
		f := newFixture(t)
		cache := newMemoryCache()
		h := queries.NewGetOrderHistoryQueryHandler(f.db, cache, nil)
		id := f.seedOrder(seed{})

		first, err := h.Handle(t.Context(), historyQuery(t, id))
		require.NoError(t, err)
		assert.Equal(t, 0, cache.hits)

		f.inTx(func(ctx context.Context, uow ports.UnitOfWork) error {
			_, err := f.engine.Transition(ctx, uow, lifecycle.TransitionRequest{OrderID: id, Target: order.Confirmed})
			return err
		})

		stale, err := h.Handle(t.Context(), historyQuery(t, id))
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, first, stale)

		require.NoError(t, cache.Invalidate(t.Context(), id))
		fresh, err := h.Handle(t.Context(), historyQuery(t, id))
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed.String(), fresh.Status)
		assert.Len(t, fresh.Entries, 3)
	})

	t.Run("cache failures fall back to the database", func(t *testing.T) {
		f := newFixture(t)
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		id := f.seedOrder(seed{})

		got, err := queries.NewGetOrderHistoryQueryHandler(f.db, cache, nil).Handle(t.Context(), historyQuery(t, id))

		require.NoError(t, err)
		assert.Len(t, got.Entries, 2)
	})

	t.Run("malformed cache entry is ignored", func(t *testing.T) {
		f := newFixture(t)
		cache := newMemoryCache()
		id := f.seedOrder(seed{})
		require.NoError(t, cache.Set(t.Context(), id, []byte("{not json")))

		got, err := queries.NewGetOrderHistoryQueryHandler(f.db, cache, nil).Handle(t.Context(), historyQuery(t, id))

		require.NoError(t, err)
		assert.Equal(t, order.Pending.String(), got.Status)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newFixture(t)

		_, err := queries.NewGetOrderHistoryQueryHandler(f.db, nil, nil).Handle(t.Context(), historyQuery(t, kernel.NewUUID()))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unconstructed query", func(t *testing.T) {
		f := newFixture(t)

		_, err := queries.NewGetOrderHistoryQueryHandler(f.db, nil, nil).Handle(t.Context(), queries.GetOrderHistoryQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})
}
