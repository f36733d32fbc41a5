package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	httpin "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/clock"
	"laundry/internal/adapters/out/filestore"
	"laundry/internal/adapters/out/kafka"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/pricing"
	"laundry/internal/adapters/out/rediscache"
	"laundry/internal/core/application/lifecycle"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	clock     ports.Clock
	engine    *lifecycle.Engine
	checker   services.AvailabilityChecker
	pricing   *pricing.Calculator
	storage   *filestore.Storage
	cache     *rediscache.HistoryCache
	publisher *kafka.Producer
}

// NewCompositionRoot wires adapters. Redis and Kafka are optional: without
// REDIS_ADDR timelines are read from the database every time, and without
// KAFKA_BROKERS outbox events stay queued.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	isolation, err := isolationLevel(cfg.DBIsolation)
	if err != nil {
		return nil, err
	}
	shop, err := kernel.NewGeoPoint(cfg.ShopLat, cfg.ShopLng)
	if err != nil {
		return nil, fmt.Errorf("shop location: %w", err)
	}
	calc, err := pricing.NewCalculator(pricing.Tariff{
		BaseFee:      cfg.PriceBaseFee,
		PerKmFee:     cfg.PricePerKmFee,
		FreeKm:       cfg.PriceFreeKm,
		EmergencyFee: cfg.PriceEmergencyFee,
		Shop:         shop,
	})
	if err != nil {
		return nil, fmt.Errorf("tariff: %w", err)
	}
	storage, err := filestore.New(cfg.PhotoDir, cfg.PhotoURLPrefix)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		gormDB:  gormDB,
		clock:   clock.NewSystem(),
		checker: services.NewAvailabilityChecker(),
		pricing: calc,
		storage: storage,
	}
	c.engine = lifecycle.NewEngine(c.clock)

	if cfg.RedisAddr != "" {
		c.cache = rediscache.New(cfg.RedisAddr, cfg.HistoryCacheTTL)
	}
	if len(cfg.KafkaBrokers) > 0 {
		c.publisher = kafka.NewProducer(cfg.KafkaBrokers)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB,
		postgres.WithIsolation(isolation),
		postgres.WithCommitHook(c.invalidateHistory),
	)
	return c, nil
}

// invalidateHistory drops cached timelines of orders changed by a commit.
func (c *CompositionRoot) invalidateHistory(ctx context.Context, orderIDs []kernel.UUID) {
	if c.cache == nil {
		return
	}
	for _, id := range orderIDs {
		if err := c.cache.Invalidate(ctx, id); err != nil {
			c.logger.WarnContext(ctx, "failed to invalidate order history", "order_id", id.String(), "error", err)
		}
	}
}

func (c *CompositionRoot) historyCache() ports.HistoryCache {
	if c.cache == nil {
		return nil
	}
	return c.cache
}

func (c *CompositionRoot) Ping(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Ping(ctx)
}

func (c *CompositionRoot) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Warn("failed to close kafka producer", "error", err)
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			c.logger.Warn("failed to close redis client", "error", err)
		}
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) absenceUoW() commands.AbsenceUoWFactory {
	return FuncAbsenceUoWFactory(func() commands.AbsenceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers builds every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		AddToCart:        commands.NewAddToCartCommandHandler(c.orderUoW(), c.engine, c.clock, c.pricing),
		RemoveFromCart:   commands.NewRemoveFromCartCommandHandler(c.orderUoW()),
		PlaceOrder:       commands.NewPlaceOrderCommandHandler(c.orderUoW(), c.engine, c.clock, c.pricing),
		CancelOrder:      commands.NewCancelOrderCommandHandler(c.uow(), c.engine, c.clock),
		CompleteOrder:    commands.NewCompleteOrderCommandHandler(c.orderUoW(), c.engine),
		FileComplaint:    commands.NewFileComplaintCommandHandler(c.orderUoW(), c.engine, c.storage),
		ResolveComplaint: commands.NewResolveComplaintCommandHandler(c.orderUoW(), c.engine),
		PurgeOrder:       commands.NewPurgeOrderCommandHandler(c.orderUoW()),

		ClaimForProcessing: commands.NewClaimForProcessingCommandHandler(c.uow(), c.clock),
		CancelProcessing:   commands.NewCancelProcessingCommandHandler(c.uow(), c.clock, c.cfg.ProcessingGrace),
		ConfirmOrder:       commands.NewConfirmOrderCommandHandler(c.uow(), c.engine, c.clock),
		StartChecking:      commands.NewStartCheckingCommandHandler(c.orderUoW(), c.engine),
		AmendCheckingNotes: commands.NewAmendCheckingNotesCommandHandler(c.orderUoW(), c.engine, c.storage),
		AdvanceProcessing:  commands.NewAdvanceProcessingCommandHandler(c.orderUoW(), c.engine, c.storage),

		AssignDriver:     commands.NewAssignDriverCommandHandler(c.uow(), c.engine, c.clock, c.checker),
		CancelAssignment: commands.NewCancelAssignmentCommandHandler(c.uow(), c.engine),
		StartTrip:        commands.NewStartTripCommandHandler(c.uow(), c.engine, c.clock),
		ConfirmArrival:   commands.NewConfirmArrivalCommandHandler(c.uow(), c.clock),
		CompleteTrip:     commands.NewCompleteTripCommandHandler(c.uow(), c.engine, c.clock, c.storage),
		FailTrip:         commands.NewFailTripCommandHandler(c.uow(), c.engine, c.clock, c.storage),

		AddAbsence:    commands.NewAddAbsenceCommandHandler(c.absenceUoW(), c.checker, c.cfg.BusinessTimezone, c.clock),
		UpdateAbsence: commands.NewUpdateAbsenceCommandHandler(c.absenceUoW(), c.checker, c.cfg.BusinessTimezone),
		DeleteAbsence: commands.NewDeleteAbsenceCommandHandler(c.absenceUoW()),

		PendingOrders:  queries.NewGetPendingOrdersQueryHandler(c.gormDB),
		OrderHistory:   queries.NewGetOrderHistoryQueryHandler(c.gormDB, c.historyCache(), c.logger),
		CurrentHandler: queries.NewGetCurrentHandlerQueryHandler(c.gormDB),
		DriverRoute:    queries.NewGetDriverAssignmentsQueryHandler(c.gormDB),
		DriverAbsences: queries.NewGetDriverAbsencesQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(c.HTTPHandlers(), c.clock)
}

func (c *CompositionRoot) HTTPOptions() httpin.Options {
	return httpin.Options{
		JWTSecret:      c.cfg.JWTSecret,
		PhotoDir:       c.storage.Dir(),
		PhotoURLPrefix: c.cfg.PhotoURLPrefix,
		MaxBodyBytes:   c.cfg.MaxBodyBytes,
	}
}

// Jobs returns the background jobs. The outbox relay runs only with a publisher.
func (c *CompositionRoot) Jobs() (*jobs.JobManager, error) {
	staleCmd, err := commands.NewReleaseStaleClaimsCommand(c.cfg.StaleClaimTimeout)
	if err != nil {
		return nil, err
	}
	all := []jobs.Job{
		jobs.NewStaleClaimsJob(
			commands.NewReleaseStaleClaimsCommandHandler(c.uow(), c.clock),
			staleCmd, c.cfg.StaleClaimCron, c.logger,
		),
	}

	if c.publisher == nil {
		c.logger.Warn("KAFKA_BROKERS is empty, outbox relay disabled")
		return jobs.NewJobManager(all...), nil
	}
	relayCmd, err := commands.NewRelayOutboxCommand(c.cfg.OutboxBatch, c.cfg.OutboxMaxAttempts)
	if err != nil {
		return nil, err
	}
	all = append(all, jobs.NewOutboxRelayJob(
		commands.NewRelayOutboxCommandHandler(c.outboxUoW(), c.publisher, c.historyCache(), c.clock),
		relayCmd, c.cfg.OutboxCron, c.logger,
	))
	return jobs.NewJobManager(all...), nil
}

func isolationLevel(name string) (sql.IsolationLevel, error) {
	switch name {
	case "", "serializable":
		return sql.LevelSerializable, nil
	case "repeatable read", "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "read committed", "read_committed":
		return sql.LevelReadCommitted, nil
	default:
		return sql.LevelDefault, fmt.Errorf("DB_ISOLATION %q is not supported", name)
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAbsenceUoWFactory func() commands.AbsenceUoW

func (f FuncAbsenceUoWFactory) Create() commands.AbsenceUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
