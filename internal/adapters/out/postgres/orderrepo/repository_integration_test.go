package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var base = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_lines, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_TracksAndPersistsLines() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)

	o := suite.newOrder(kernel.NewUUID(), base, "1200.00", "1400.00")
	tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(repo.Add(ctx, o))
	tracker.AssertExpectations(suite.T())

	got, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Ordered, got.Status())
	suite.True(got.IsActive())
	suite.True(got.CreatedAt().Equal(base))
	suite.Require().Len(got.Lines(), 2)
	suite.Equal("1200.00", got.Lines()[0].UnitPrice().String())
	suite.Equal("1400.00", got.Lines()[1].UnitPrice().String())
	suite.Equal("2600.00", got.Total().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_KeepsLines() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), base, "10.00")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Advance(order.Ordered, order.Preparing, base.Add(10*time.Second)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, got.Status())
	suite.Len(got.Lines(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	o := suite.newOrder(kernel.NewUUID(), base, "10.00")

	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountActiveByStatusIn() {
	ctx := context.Background()
	preparing := suite.newOrder(kernel.NewUUID(), base, "1.00")
	suite.Require().NoError(preparing.Advance(order.Ordered, order.Preparing, base))
	suite.Require().NoError(suite.repository.Add(ctx, preparing))

	delivering := suite.newOrder(kernel.NewUUID(), base, "1.00")
	suite.Require().NoError(delivering.Advance(order.Ordered, order.Preparing, base))
	suite.Require().NoError(delivering.Advance(order.Preparing, order.InDelivery, base))
	suite.Require().NoError(suite.repository.Add(ctx, delivering))

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), base, "1.00")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newScheduled(base.Add(time.Hour))))

	canceled := suite.newOrder(kernel.NewUUID(), base, "1.00")
	suite.Require().NoError(suite.repository.Add(ctx, canceled))
	suite.Require().NoError(canceled.Cancel(suite.ownerOf(canceled), base))
	suite.Require().NoError(suite.repository.Update(ctx, canceled))

	n, err := suite.repository.CountActiveByStatusIn(ctx, order.OccupyingStatuses())
	suite.Require().NoError(err)
	suite.Equal(int64(2), n)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetDueScheduled_OldestFirst() {
	ctx := context.Background()
	later := suite.newScheduled(base.Add(2 * time.Minute))
	sooner := suite.newScheduled(base.Add(time.Minute))
	future := suite.newScheduled(base.Add(time.Hour))
	for _, o := range []*order.Order{later, sooner, future} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.GetDueScheduled(ctx, base.Add(2*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(sooner.ID(), got[0].ID())
	suite.Equal(later.ID(), got[1].ID())
	suite.Len(got[0].Lines(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSearch() {
	ctx := context.Background()
	alice := kernel.NewUUID()
	older := suite.newOrder(alice, base.Add(-time.Hour), "1.00")
	newer := suite.newOrder(alice, base, "1.00")
	foreign := suite.newOrder(kernel.NewUUID(), base.Add(-30*time.Minute), "1.00")
	for _, o := range []*order.Order{older, newer, foreign} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	suite.Run("newest first", func() {
		got, err := suite.repository.Search(ctx, ports.OrderFilter{})
		suite.Require().NoError(err)
		suite.Require().Len(got, 3)
		suite.Equal(newer.ID(), got[0].ID())
		suite.Equal(older.ID(), got[2].ID())
	})

	suite.Run("owner and inclusive range", func() {
		from := base.Add(-time.Hour)
		to := base.Add(-30 * time.Minute)
		got, err := suite.repository.Search(ctx, ports.OrderFilter{
			CreatedFrom: &from,
			CreatedTo:   &to,
			CreatedBy:   &alice,
		})
		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(older.ID(), got[0].ID())
	})

	suite.Run("status", func() {
		got, err := suite.repository.Search(ctx, ports.OrderFilter{Statuses: []order.Status{order.Delivered}})
		suite.Require().NoError(err)
		suite.Empty(got)
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(owner kernel.UUID, at time.Time, prices ...string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), owner, suite.lines(prices...), at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newScheduled(scheduledFor time.Time) *order.Order {
	o, err := order.NewScheduledOrder(kernel.NewUUID(), kernel.NewUUID(), suite.lines("2.00"), scheduledFor, base)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) lines(prices ...string) []order.Line {
	lines := make([]order.Line, 0, len(prices))
	for _, p := range prices {
		price, err := kernel.MoneyFromString(p)
		suite.Require().NoError(err)
		line, err := order.NewLine(kernel.NewUUID(), 1, price)
		suite.Require().NoError(err)
		lines = append(lines, line)
	}
	return lines
}

func (suite *OrderRepositoryIntegrationTestSuite) ownerOf(o *order.Order) user.Actor {
	a, err := user.NewActor(o.CreatedBy(), user.CanCancelOrder)
	suite.Require().NoError(err)
	return a
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
