package commands_test

import (
	"context"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
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

func (m *MockOrderRepository) Search(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) CountActiveByStatusIn(ctx context.Context, statuses []order.Status) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetDueScheduled(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockTransitionRepository struct{ mock.Mock }

func (m *MockTransitionRepository) Add(ctx context.Context, t *transition.PendingTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransitionRepository) Update(ctx context.Context, t *transition.PendingTransition) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransitionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*transition.PendingTransition, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*transition.PendingTransition)
	return t, args.Error(1)
}

func (m *MockTransitionRepository) GetDueUnprocessed(ctx context.Context, now time.Time) ([]*transition.PendingTransition, error) {
	args := m.Called(ctx, now)
	ts, _ := args.Get(0).([]*transition.PendingTransition)
	return ts, args.Error(1)
}

func (m *MockTransitionRepository) GetUnprocessedByOrder(ctx context.Context, orderID kernel.UUID) ([]*transition.PendingTransition, error) {
	args := m.Called(ctx, orderID)
	ts, _ := args.Get(0).([]*transition.PendingTransition)
	return ts, args.Error(1)
}

type MockFailureRepository struct{ mock.Mock }

func (m *MockFailureRepository) Add(ctx context.Context, r *failure.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type MockDishRepository struct{ mock.Mock }

func (m *MockDishRepository) Add(ctx context.Context, d *dish.Dish) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDishRepository) Get(ctx context.Context, id kernel.UUID) (*dish.Dish, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*dish.Dish)
	return d, args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.LifecycleUoW.
// Repository accessors always return the same repository mocks.
type MockUoW struct {
	mock.Mock
	orders      *MockOrderRepository
	transitions *MockTransitionRepository
	failures    *MockFailureRepository
	dishes      *MockDishRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		transitions: new(MockTransitionRepository),
		failures:    new(MockFailureRepository),
		dishes:      new(MockDishRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockUoW) TransitionRepository() ports.TransitionRepository {
	return m.transitions
}

func (m *MockUoW) FailureRepository() ports.FailureRepository {
	return m.failures
}

func (m *MockUoW) DishRepository() ports.DishRepository {
	return m.dishes
}

func (m *MockUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.transitions.AssertExpectations(t)
	m.failures.AssertExpectations(t)
	m.dishes.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}
