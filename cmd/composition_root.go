package cmd

import (
	"log/slog"

	ordershttp "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/productrepo"
	ordersredis "ordering/internal/adapters/out/redis"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    ports.ProductCatalog
	codes      ports.OrderCodeGenerator
	publisher  ports.EventPublisher
	pricing    services.PricingEngine
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters into the use case handlers. The
// config must have passed Validate.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	shipping, _ := cfg.ShippingRule()

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    productrepo.NewGormProductCatalog(gormDB),
		codes:      ordersredis.NewOrderCodeGenerator(rdb, cfg.OrderCodePrefix),
		publisher:  publisher,
		pricing:    services.NewPricingEngine(shipping),
		clock:      ports.SystemClock{},
		logger:     logger,
	}
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) couponUoWFactory() commands.CouponUoWFactory {
	return FuncCouponUoWFactory(func() commands.CouponUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tierUoWFactory() commands.TierUoWFactory {
	return FuncTierUoWFactory(func() commands.TierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.checkoutUoWFactory(), c.catalog, c.codes, c.pricing, c.publisher, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateTrackingCommandHandler() commands.UpdateTrackingCommandHandler {
	return commands.NewUpdateTrackingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCompleteRefundCommandHandler() commands.CompleteRefundCommandHandler {
	return commands.NewCompleteRefundCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateCouponCommandHandler() commands.CreateCouponCommandHandler {
	return commands.NewCreateCouponCommandHandler(c.couponUoWFactory())
}

func (c *CompositionRoot) CreateReplaceTiersCommandHandler() commands.ReplaceTiersCommandHandler {
	return commands.NewReplaceTiersCommandHandler(c.tierUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateExpiredCouponsCommandHandler() *commands.DeactivateExpiredCouponsCommandHandler {
	h := commands.NewDeactivateExpiredCouponsCommandHandler(c.couponUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateValidateCouponQueryHandler() queries.ValidateCouponQueryHandler {
	return queries.NewValidateCouponQueryHandler(c.uowFactory, c.clock)
}

func (c *CompositionRoot) CreateQuoteCartQueryHandler() queries.QuoteCartQueryHandler {
	return queries.NewQuoteCartQueryHandler(c.uowFactory, c.catalog, c.pricing, c.clock)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.uowFactory, services.NewVisibilityGate())
}

func (c *CompositionRoot) CreateListMyOrdersQueryHandler() queries.ListMyOrdersQueryHandler {
	return queries.NewListMyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPendingRefundsQueryHandler() queries.ListPendingRefundsQueryHandler {
	return queries.NewListPendingRefundsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *ordershttp.Server {
	return ordershttp.NewServer(ordershttp.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:  c.CreateChangeOrderStatusCommandHandler(),
		UpdateTracking:     c.CreateUpdateTrackingCommandHandler(),
		CompleteRefund:     c.CreateCompleteRefundCommandHandler(),
		CreateCoupon:       c.CreateCreateCouponCommandHandler(),
		ReplaceTiers:       c.CreateReplaceTiersCommandHandler(),
		ValidateCoupon:     c.CreateValidateCouponQueryHandler(),
		QuoteCart:          c.CreateQuoteCartQueryHandler(),
		TrackOrder:         c.CreateTrackOrderQueryHandler(),
		ListMyOrders:       c.CreateListMyOrdersQueryHandler(),
		ListPendingRefunds: c.CreateListPendingRefundsQueryHandler(),
	})
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDeactivateExpiredCouponsCommandHandler(),
		c.CreateListPendingRefundsQueryHandler(),
		jobs.Schedules{
			CouponExpiry:   c.cfg.CouponExpirySchedule,
			PendingRefunds: c.cfg.PendingRefundsSchedule,
		},
		c.logger,
	)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCouponUoWFactory func() commands.CouponUoW

func (f FuncCouponUoWFactory) Create() commands.CouponUoW {
	return f()
}

type FuncTierUoWFactory func() commands.TierUoW

func (f FuncTierUoWFactory) Create() commands.TierUoW {
	return f()
}
