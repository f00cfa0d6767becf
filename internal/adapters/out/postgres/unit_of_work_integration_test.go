package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/failurerepo"
	"foodorder/internal/core/domain/model/dish"
	"foodorder/internal/core/domain/model/failure"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var base = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evs ...order.DomainEvent) error {
	args := m.Called(ctx, evs)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	publisher *MockPublisher
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

// SetupSuite starts PostgreSQL and migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

// SetupTest truncates every table and resets the publisher mock.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := postgres_adapter.Truncate(suite.db)
	suite.Require().NoError(err)

	suite.publisher = new(MockPublisher)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.publisher, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_PlacementWrites stores an order, its first transition, a
// failure record and a dish in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PlacementWrites() {
	ctx := context.Background()
	o := suite.newOrder()
	first, err := transition.ScheduleNext(kernel.NewUUID(), o, base)
	suite.Require().NoError(err)
	record, err := failure.ForPlacement(o.CreatedBy(), "Maximum number of simultaneous orders (3) exceeded", base)
	suite.Require().NoError(err)
	d := suite.newDish("Margherita", "9.50")

	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.TransitionRepository().Add(ctx, first))
	suite.Require().NoError(uow.FailureRepository().Add(ctx, record))
	suite.Require().NoError(uow.DishRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	due, err := reader.TransitionRepository().GetDueUnprocessed(ctx, base.Add(order.PreparingDelay))
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(order.Preparing, due[0].Target())

	gotDish, err := reader.DishRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal("9.50", gotDish.Price().String())

	var failures []failurerepo.FailureDTO
	suite.Require().NoError(suite.db.Find(&failures).Error)
	suite.Require().Len(failures, 1)
	suite.Equal(string(failure.PlaceOrder), failures[0].Operation)
	suite.Nil(failures[0].OrderID)

	suite.publisher.AssertExpectations(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishesAfterCommit() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(evs []order.DomainEvent) bool {
		return len(evs) == 1 && evs[0].(order.StatusChanged).To == order.Ordered
	})).Return(nil).Once()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
	suite.Require().NoError(uow.Commit(ctx))

	suite.publisher.AssertExpectations(suite.T())
	suite.Empty(o.DomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err, "Order should not persist after rollback")
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	order1 := suite.newOrder()
	order2 := suite.newOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = reader.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

// TestUnitOfWork_GetForUpdateSerializes verifies that a second locker waits
// for the first transaction and then observes its committed status.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateSerializes() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	locked, err := first.OrderRepository().GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	done := make(chan order.Status, 1)
	go func() {
		second := suite.factory.Create()
		if beginErr := second.Begin(ctx); beginErr != nil {
			done <- order.Unknown
			return
		}
		defer func() { _ = second.Rollback(ctx) }()

		got, getErr := second.OrderRepository().GetForUpdate(ctx, o.ID())
		if getErr != nil {
			done <- order.Unknown
			return
		}
		done <- got.Status()
	}()

	select {
	case <-done:
		suite.Fail("second locker should block while the row is locked")
	case <-time.After(200 * time.Millisecond):
	}

	suite.Require().NoError(locked.Advance(order.Ordered, order.Preparing, base.Add(order.PreparingDelay)))
	suite.Require().NoError(first.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case status := <-done:
		suite.Equal(order.Preparing, status)
	case <-time.After(5 * time.Second):
		suite.Fail("second locker never acquired the row")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	o := suite.newOrder()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), retrieved.ID())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDishRepository_AddIsIdempotent() {
	ctx := context.Background()
	repo := suite.factory.Create().DishRepository()

	original := suite.newDish("Carbonara", "11.00")
	suite.Require().NoError(repo.Add(ctx, original))

	price, err := kernel.MoneyFromString("12.00")
	suite.Require().NoError(err)
	updated, err := dish.NewDish(original.ID(), "Carbonara", "", price, false)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, updated))

	got, err := repo.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal("12.00", got.Price().String())
	suite.False(got.IsAvailable())
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	price, err := kernel.MoneyFromString("1200.00")
	suite.Require().NoError(err)
	line, err := order.NewLine(kernel.NewUUID(), 2, price)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, base)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newDish(name, price string) *dish.Dish {
	m, err := kernel.MoneyFromString(price)
	suite.Require().NoError(err)
	d, err := dish.NewDish(kernel.NewUUID(), name, "", m, true)
	suite.Require().NoError(err)
	return d
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
