package transitionrepo_test

import (
	"context"
	"testing"
	"time"

	"foodorder/internal/adapters/out/postgres/transitionrepo"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/transition"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var base = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type TransitionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *transitionrepo.GormTransitionRepository
}

func (suite *TransitionRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&transitionrepo.TransitionDTO{}))
}

func (suite *TransitionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pending_transitions").Error)
	suite.repository = transitionrepo.NewGormTransitionRepository(suite.db)
}

func (suite *TransitionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TransitionRepositoryIntegrationTestSuite) TestGetDueUnprocessed_OrderedByDueThenInsertion() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	due := base.Add(order.PreparingDelay)

	late := suite.newTransition(orderID, order.Preparing, order.InDelivery, due.Add(time.Second))
	firstTie := suite.newTransition(orderID, order.Ordered, order.Preparing, due)
	secondTie := suite.newTransition(kernel.NewUUID(), order.Ordered, order.Preparing, due)
	for _, t := range []*transition.PendingTransition{late, firstTie, secondTie} {
		suite.Require().NoError(suite.repository.Add(ctx, t))
	}

	got, err := suite.repository.GetDueUnprocessed(ctx, due)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(firstTie.ID(), got[0].ID())
	suite.Equal(secondTie.ID(), got[1].ID())
	suite.True(got[0].DueAt().Equal(due))

	got, err = suite.repository.GetDueUnprocessed(ctx, due.Add(time.Second))
	suite.Require().NoError(err)
	suite.Len(got, 3)
}

func (suite *TransitionRepositoryIntegrationTestSuite) TestUpdate_MarksProcessed() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	pt := suite.newTransition(orderID, order.Ordered, order.Preparing, base)
	suite.Require().NoError(suite.repository.Add(ctx, pt))

	pt.MarkProcessed()
	suite.Require().NoError(suite.repository.Update(ctx, pt))

	pending, err := suite.repository.GetUnprocessedByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Empty(pending)

	reloaded, err := suite.repository.GetForUpdate(ctx, pt.ID())
	suite.Require().NoError(err)
	suite.True(reloaded.IsProcessed())
	suite.Equal(order.Ordered, reloaded.FromStatus())
	suite.Equal(order.Preparing, reloaded.Target())
}

func (suite *TransitionRepositoryIntegrationTestSuite) TestGetForUpdate_Missing() {
	_, err := suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TransitionRepositoryIntegrationTestSuite) newTransition(
	orderID kernel.UUID,
	from, target order.Status,
	dueAt time.Time,
) *transition.PendingTransition {
	t, err := transition.NewPendingTransition(kernel.NewUUID(), orderID, from, target, dueAt, base)
	suite.Require().NoError(err)
	return t
}

func TestTransitionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TransitionRepositoryIntegrationTestSuite))
}
