package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpadapter "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/events"
	"foodorder/internal/adapters/out/kafka"
	"foodorder/internal/adapters/out/memory"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/rabbitmq"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"
	"foodorder/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	admission  services.AdmissionController
	clock      ports.Clock
	closers    []io.Closer
}

// NewCompositionRoot opens the configured store and event broker.
// Call Close to release them.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:    config,
		logger:    logger,
		admission: services.NewAdmissionController(),
		clock:     clock.System{},
	}

	publisher, err := root.openPublisher()
	if err != nil {
		return nil, err
	}

	switch config.StorageDriver {
	case StorageMemory:
		root.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, logger)
	default:
		db, openErr := openPostgres(config)
		if openErr != nil {
			return nil, errors.Join(openErr, root.Close())
		}
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			root.closers = append(root.closers, sqlDB)
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db, publisher, logger)
	}

	if config.SeedMenu {
		seeded, seedErr := SeedMenu(ctx, root.uowFactory.Create().DishRepository())
		if seedErr != nil {
			return nil, errors.Join(seedErr, root.Close())
		}
		logger.InfoContext(ctx, "Menu seeded", "dishes", seeded)
	}

	return root, nil
}

func openPostgres(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

func (c *CompositionRoot) openPublisher() (ports.OrderEventPublisher, error) {
	switch c.config.EventsBroker {
	case BrokerKafka:
		producer := kafka.NewProducer(c.config.KafkaBrokers(), c.config.KafkaOrderChangedTopic)
		c.closers = append(c.closers, producer)
		return producer, nil
	case BrokerRabbitMQ:
		conn, err := rabbitmq.Dial(c.config.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		publisher := rabbitmq.NewPublisher(conn, c.config.RabbitMQExchange)
		c.closers = append(c.closers, publisher)
		return publisher, nil
	case BrokerLog:
		return events.NewLogPublisher(c.logger), nil
	default:
		return nil, nil
	}
}

// Close releases the store and broker connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i].Close())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.admission, c.clock)
}

func (c *CompositionRoot) CreateScheduleOrderCommandHandler() commands.ScheduleOrderCommandHandler {
	return commands.NewScheduleOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.lifecycleUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateActivateScheduledOrdersCommandHandler() commands.ActivateScheduledOrdersCommandHandler {
	return commands.NewActivateScheduledOrdersCommandHandler(c.lifecycleUoWFactory(), c.admission, c.clock, c.logger)
}

func (c *CompositionRoot) CreateApplyDueTransitionsCommandHandler() commands.ApplyDueTransitionsCommandHandler {
	return commands.NewApplyDueTransitionsCommandHandler(c.lifecycleUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetCapacityQueryHandler() queries.GetCapacityQueryHandler {
	return queries.NewGetCapacityQueryHandler(c.orderReader(), c.admission)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateActivateScheduledOrdersCommandHandler(),
		c.CreateApplyDueTransitionsCommandHandler(),
		jobs.Schedules{
			Activation: c.config.ActivationSweepSchedule,
			Transition: c.config.TransitionSweepSchedule,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateScheduleOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.CreateSearchOrdersQueryHandler(),
		c.CreateGetCapacityQueryHandler(),
	)
	return httpadapter.NewRouter(server, doc, c.logger)
}

// orderReader reads outside any transaction.
func (c *CompositionRoot) orderReader() ports.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}
