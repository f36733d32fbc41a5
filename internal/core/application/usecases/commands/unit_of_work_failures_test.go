package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/event"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetCart(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, e *order.HistoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockHistoryRepository) AddPhotos(_ context.Context, _ uint64, _ []order.Photo) error {
	return nil
}

func (m *MockHistoryRepository) UpdateNotes(_ context.Context, _ *order.HistoryEntry) error {
	return nil
}

func (m *MockHistoryRepository) List(_ context.Context, _ kernel.UUID) ([]*order.HistoryEntry, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) Latest(_ context.Context, _ kernel.UUID) (*order.HistoryEntry, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) LatestByStatus(_ context.Context, _ kernel.UUID, _ order.Status) (*order.HistoryEntry, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) Delete(_ context.Context, _ []uint64) error {
	return nil
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListPending(_ context.Context, _, _ int) ([]event.Event, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOutboxRepository) MarkDone(_ context.Context, _ kernel.UUID, _ time.Time) error {
	return nil
}

func (m *MockOutboxRepository) MarkFailed(_ context.Context, _ kernel.UUID, _ int, _ string) error {
	return nil
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func checkingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:         kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Status:     order.Checking,
		CreatedAt:  testStart,
	})
	require.NoError(t, err)
	return o
}

func TestAdvanceProcessing_CommitErrorDeletesPhotos(t *testing.T) {
	ctx := t.Context()
	o := checkingOrder(t)
	storage := newMemoryStorage()
	engine := lifecycle.NewEngine(testutil.NewClock(testStart))

	orders := new(MockOrderRepository)
	history := new(MockHistoryRepository)
	outbox := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(history).Once(),
		history.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("Add", ctx, mock.AnythingOfType("event.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceProcessingCommandHandler(factory, engine, storage)
	cmd, err := commands.NewAdvanceProcessingCommand(o.ID(), kernel.NewUUID(), order.Checked, "", []ports.PhotoUpload{photo("tag.jpg")})
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "commit error")
	assert.Zero(t, storage.stored())
	assert.Len(t, storage.deletions, 1)
	orders.AssertExpectations(t)
	history.AssertExpectations(t)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceProcessing_HistoryErrorStopsBeforeOutbox(t *testing.T) {
	ctx := t.Context()
	o := checkingOrder(t)
	engine := lifecycle.NewEngine(testutil.NewClock(testStart))

	orders := new(MockOrderRepository)
	history := new(MockHistoryRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(history).Once(),
		history.On("Append", ctx, mock.Anything).Return(errors.New("append error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceProcessingCommandHandler(factory, engine, newMemoryStorage())
	cmd, _ := commands.NewAdvanceProcessingCommand(o.ID(), kernel.NewUUID(), order.Checked, "", nil)

	require.ErrorContains(t, h.Handle(ctx, cmd), "append error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPurgeOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPurgeOrderCommandHandler(factory)
	cmd, _ := commands.NewPurgeOrderCommand(kernel.NewUUID(), kernel.NewUUID())

	require.ErrorContains(t, h.Handle(ctx, cmd), "begin error")
	uow.AssertExpectations(t)
}

func TestPurgeOrderCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	o := checkingOrder(t)
	orders := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Delete", ctx, o.ID()).Return(errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeOrderCommandHandler(factory)
	cmd, _ := commands.NewPurgeOrderCommand(o.ID(), kernel.NewUUID())

	require.ErrorContains(t, h.Handle(ctx, cmd), "delete error")
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPurgeOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewPurgeOrderCommandHandler(factory)

	err := h.Handle(t.Context(), commands.PurgeOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPurgeOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
