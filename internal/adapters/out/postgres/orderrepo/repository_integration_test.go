package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var placedAt = time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	sequence   int64
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	original := suite.createTestOrder(userID, order.UPI)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	byID, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	byCode, err := suite.repository.GetByCode(ctx, original.Code())
	suite.Require().NoError(err)

	for _, got := range []*order.Order{byID, byCode} {
		suite.True(got.IsEqual(original))
		suite.Equal(original.Code(), got.Code())
		suite.Equal(userID, got.UserID())
		suite.Equal(order.Confirmed, got.Status())
		suite.True(got.Charges().IsEqual(original.Charges()))
		suite.Equal(original.ShippingAddress().Fields(), got.ShippingAddress().Fields())
		suite.Equal(order.UPI, got.Payment().Method())
		suite.Equal("UTR123456789", got.Payment().UTRNumber())
		suite.Require().Len(got.Items(), 2)
		suite.Equal("p-1", got.Items()[0].ProductID())
		suite.Equal("p-2", got.Items()[1].ProductID())
		suite.True(got.PlacedAt().Equal(placedAt))
		suite.Zero(got.Version())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	got, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	code, err := order.NewCode("UK", placedAt, 999)
	suite.Require().NoError(err)
	_, err = suite.repository.GetByCode(ctx, code)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellationAndRefund() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	o := suite.createTestOrder(userID, order.UPI)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	admin := kernel.NewAdminActor(kernel.NewUUID())
	cancelledAt := placedAt.Add(time.Hour)
	suite.Require().NoError(o.ChangeStatus(admin, order.StatusChange{
		To: order.Processing, TrackingID: "TRK1", DeliveryPartner: "BlueDart",
	}, placedAt.Add(time.Minute)))
	suite.Require().NoError(o.ChangeStatus(admin, order.StatusChange{To: order.Cancelled, CancelReason: "out of stock"}, cancelledAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(1, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Cancelled, got.Status())
	suite.Equal("out of stock", got.Cancellation().Reason())
	suite.Equal(order.CancelledByAdmin, got.Cancellation().By())
	suite.Equal(order.RefundPending, got.Refund().Status())
	suite.Equal("TRK1", got.Tracking().TrackingID())
	suite.Equal(1, got.Version())
	dates := got.StatusDates()
	suite.Len(dates, 3)
	suite.True(dates[order.Cancelled].Equal(cancelledAt))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	o := suite.createTestOrder(kernel.NewUUID(), order.COD)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	admin := kernel.NewAdminActor(kernel.NewUUID())
	suite.Require().NoError(first.ChangeStatus(admin, order.StatusChange{
		To: order.Processing, TrackingID: "TRK1", DeliveryPartner: "BlueDart",
	}, placedAt))
	suite.Require().NoError(second.ChangeStatus(admin, order.StatusChange{To: order.Cancelled, CancelReason: "duplicate"}, placedAt))

	suite.Require().NoError(suite.repository.Update(ctx, first))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o := suite.createTestOrder(kernel.NewUUID(), order.COD)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByUser_IncludesCancelledOrders() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	o := suite.createTestOrder(userID, order.COD)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder(kernel.NewUUID(), order.COD)))

	suite.Require().NoError(o.ChangeStatus(kernel.NewCustomerActor(userID), order.StatusChange{
		To: order.Cancelled, CancelReason: "changed my mind",
	}, placedAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	count, err := suite.repository.CountByUser(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	count, err = suite.repository.CountByUser(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(userID kernel.UUID, method order.PaymentMethod) *order.Order {
	suite.sequence++
	code, err := order.NewCode("UK", placedAt, suite.sequence)
	suite.Require().NoError(err)

	kurta, err := order.NewLineItem("p-1", "Kurta", kernel.MoneyFromInt(250), 2, "kurta.jpg")
	suite.Require().NoError(err)
	dupatta, err := order.NewLineItem("p-2", "Dupatta", kernel.MoneyFromInt(125), 4, "")
	suite.Require().NoError(err)

	charges, err := order.NewCharges(
		kernel.MoneyFromInt(1000), kernel.MoneyFromInt(50), order.TierDiscount, "", kernel.Money{},
	)
	suite.Require().NoError(err)

	address, err := kernel.NewAddress(kernel.AddressFields{
		FullName: "Asha Verma", Phone: "9876543210", Line1: "12 MG Road",
		City: "Bengaluru", State: "Karnataka", Pincode: "560001",
	})
	suite.Require().NoError(err)

	payment, err := order.NewPayment(method, "UTR123456789")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), code, userID, []order.LineItem{kurta, dupatta}, charges, address, payment, placedAt,
	)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
