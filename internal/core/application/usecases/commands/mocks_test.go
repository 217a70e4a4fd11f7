package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code order.Code) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID kernel.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) Add(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Redeem(ctx context.Context, c *coupon.Coupon, at time.Time) error {
	args := m.Called(ctx, c, at)
	return args.Error(0)
}

func (m *MockCouponRepository) ListExpiredActive(ctx context.Context, at time.Time) ([]*coupon.Coupon, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*coupon.Coupon), args.Error(1)
}

type MockTierRepository struct{ mock.Mock }

func (m *MockTierRepository) GetAll(ctx context.Context) ([]tier.Tier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tier.Tier), args.Error(1)
}

func (m *MockTierRepository) ReplaceAll(ctx context.Context, tiers []tier.Tier) error {
	args := m.Called(ctx, tiers)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface in the commands package.
type MockUoW struct{ mock.Mock }

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
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

func (m *MockUoW) TierRepository() ports.TierRepository {
	args := m.Called()
	return args.Get(0).(ports.TierRepository)
}

type checkoutFactory struct{ uow *MockUoW }

func (f checkoutFactory) Create() commands.CheckoutUoW { return f.uow }

type orderFactory struct{ uow *MockUoW }

func (f orderFactory) Create() commands.OrderUoW { return f.uow }

type couponFactory struct{ uow *MockUoW }

func (f couponFactory) Create() commands.CouponUoW { return f.uow }

type tierFactory struct{ uow *MockUoW }

func (f tierFactory) Create() commands.TierUoW { return f.uow }

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]ports.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]ports.Product), args.Error(1)
}

type MockCodeGenerator struct{ mock.Mock }

func (m *MockCodeGenerator) Next(ctx context.Context, issuedAt time.Time) (order.Code, error) {
	args := m.Called(ctx, issuedAt)
	return args.Get(0).(order.Code), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...ports.OrderEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

func mustAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{
		FullName: "Asha Verma",
		Phone:    "9876543210",
		Line1:    "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	})
	require.NoError(t, err)
	return a
}

func mustPayment(t *testing.T, method order.PaymentMethod) order.Payment {
	t.Helper()
	p, err := order.NewPayment(method, "UTR123456789")
	require.NoError(t, err)
	return p
}

func mustCode(t *testing.T, seq int64) order.Code {
	t.Helper()
	c, err := order.NewCode("UK", now, seq)
	require.NoError(t, err)
	return c
}

// placedOrder returns a confirmed order for 4 x 250 owned by userID.
func placedOrder(t *testing.T, userID kernel.UUID, method order.PaymentMethod) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("p-1", "Kurta", kernel.MoneyFromInt(250), 4, "")
	require.NoError(t, err)
	charges, err := order.NewCharges(kernel.MoneyFromInt(1000), kernel.Money{}, order.NoDiscount, "", kernel.Money{})
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), mustCode(t, 1), userID, []order.LineItem{item}, charges,
		mustAddress(t), mustPayment(t, method), now.Add(-time.Hour),
	)
	require.NoError(t, err)
	return o
}
