package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)

// Queries only read, so the write methods of the embedded ports are left nil.

type MockOrderRepository struct {
	mock.Mock
	ports.OrderRepository
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

type MockCouponRepository struct {
	mock.Mock
	ports.CouponRepository
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

type MockTierRepository struct {
	mock.Mock
	ports.TierRepository
}

func (m *MockTierRepository) GetAll(ctx context.Context) ([]tier.Tier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tier.Tier), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]ports.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]ports.Product), args.Error(1)
}

// readUoW hands out the mocked repositories. Queries never open a transaction,
// so Begin, Commit and Rollback are left to the embedded nil interface.
type readUoW struct {
	ports.UnitOfWork
	orders  *MockOrderRepository
	coupons *MockCouponRepository
	tiers   *MockTierRepository
}

func newReadUoW() *readUoW {
	return &readUoW{
		orders:  new(MockOrderRepository),
		coupons: new(MockCouponRepository),
		tiers:   new(MockTierRepository),
	}
}

func (u *readUoW) Create() ports.UnitOfWork                 { return u }
func (u *readUoW) OrderRepository() ports.OrderRepository   { return u.orders }
func (u *readUoW) CouponRepository() ports.CouponRepository { return u.coupons }
func (u *readUoW) TierRepository() ports.TierRepository     { return u.tiers }

func (u *readUoW) assertExpectations(t *testing.T) {
	t.Helper()
	u.orders.AssertExpectations(t)
	u.coupons.AssertExpectations(t)
	u.tiers.AssertExpectations(t)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

func mustCode(t *testing.T, seq int64) order.Code {
	t.Helper()
	c, err := order.NewCode("UK", now, seq)
	require.NoError(t, err)
	return c
}

// newOrder builds a confirmed 4 x 250 order for userID placed at placedAt.
func newOrder(t *testing.T, userID kernel.UUID, seq int64, method order.PaymentMethod, placedAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("p-1", "Kurta", kernel.MoneyFromInt(250), 4, "kurta.jpg")
	require.NoError(t, err)
	charges, err := order.NewCharges(kernel.MoneyFromInt(1000), kernel.Money{}, order.NoDiscount, "", kernel.Money{})
	require.NoError(t, err)
	address, err := kernel.NewAddress(kernel.AddressFields{
		FullName: "Asha Verma",
		Phone:    "9876543210",
		Line1:    "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	})
	require.NoError(t, err)
	payment, err := order.NewPayment(method, "UTR123456789")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), mustCode(t, seq), userID, []order.LineItem{item}, charges, address, payment, placedAt)
	require.NoError(t, err)
	return o
}
