package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		mustCode(t),
		kernel.NewUUID(),
		[]order.LineItem{mustItem(t, 250, 4)},
		mustCharges(t, 1000),
		mustAddress(t),
		mustPayment(t, method),
		placedAt,
	)
	require.NoError(t, err)
	return o
}

func mustCode(t *testing.T) order.Code {
	t.Helper()
	c, err := order.NewCode("UK", placedAt, 1)
	require.NoError(t, err)
	return c
}

func mustItem(t *testing.T, price int64, qty int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem("p-1", "Kurta", kernel.MoneyFromInt(price), qty, "kurta.jpg")
	require.NoError(t, err)
	return item
}

func mustCharges(t *testing.T, itemsPrice int64) order.Charges {
	t.Helper()
	c, err := order.NewCharges(kernel.MoneyFromInt(itemsPrice), kernel.Money{}, order.NoDiscount, "", kernel.Money{})
	require.NoError(t, err)
	return c
}

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

func admin() kernel.Actor {
	return kernel.NewAdminActor(kernel.NewUUID())
}

func TestNewOrder(t *testing.T) {
	t.Run("should create confirmed order", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, placedAt, o.PlacedAt())
		assert.Len(t, o.StatusDates(), 1)
		assert.Equal(t, order.RefundNone, o.Refund().Status())
		assert.Equal(t, "UTR123456789", o.Payment().UTRNumber())
		assert.Equal(t, 0, o.Version())
	})

	t.Run("should reject empty items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), mustCode(t), kernel.NewUUID(), nil,
			mustCharges(t, 0), mustAddress(t), mustPayment(t, order.COD), placedAt,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject items price that does not match line items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), mustCode(t), kernel.NewUUID(), []order.LineItem{mustItem(t, 250, 4)},
			mustCharges(t, 999), mustAddress(t), mustPayment(t, order.COD), placedAt,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "itemsPrice")
	})

	t.Run("should report every missing identity", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.UUID{}, order.Code{}, kernel.UUID{}, []order.LineItem{mustItem(t, 250, 4)},
			mustCharges(t, 1000), kernel.Address{}, mustPayment(t, order.COD), placedAt,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderCode")
		assert.Contains(t, err.Error(), "userId")
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("should copy items", func(t *testing.T) {
		o := newTestOrder(t, order.COD)

		items := o.Items()
		items[0] = mustItem(t, 1, 1)

		assert.True(t, o.Items()[0].UnitPrice().IsEqual(kernel.MoneyFromInt(250)))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("processing without tracking is rejected with no mutation", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)

		err := o.ChangeStatus(admin(), order.StatusChange{To: order.Processing}, placedAt.Add(time.Hour))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Len(t, o.StatusDates(), 1)
	})

	t.Run("processing with tracking stamps status date", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		now := placedAt.Add(time.Hour)

		err := o.ChangeStatus(admin(), order.StatusChange{
			To:              order.Processing,
			TrackingID:      "TRK123",
			DeliveryPartner: "BlueDart",
		}, now)

		require.NoError(t, err)
		assert.Equal(t, order.Processing, o.Status())
		assert.Equal(t, now, o.StatusDates()[order.Processing])
		assert.Equal(t, placedAt, o.StatusDates()[order.Confirmed])
		assert.Equal(t, "TRK123", o.Tracking().TrackingID())
		assert.Equal(t, "BlueDart", o.Tracking().DeliveryPartner())
	})

	t.Run("should walk the full fulfillment path", func(t *testing.T) {
		o := newTestOrder(t, order.COD)
		now := placedAt

		path := []order.StatusChange{
			{To: order.Processing, TrackingID: "TRK123", DeliveryPartner: "BlueDart"},
			{To: order.Shipped},
			{To: order.OutForDelivery},
			{To: order.Delivered},
		}
		for _, change := range path {
			now = now.Add(time.Hour)
			require.NoError(t, o.ChangeStatus(admin(), change, now))
		}

		assert.Equal(t, order.Delivered, o.Status())
		assert.Len(t, o.StatusDates(), 5)

		err := o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "late"}, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Len(t, o.StatusDates(), 5)
	})

	t.Run("should not skip states", func(t *testing.T) {
		o := newTestOrder(t, order.COD)

		err := o.ChangeStatus(admin(), order.StatusChange{To: order.Shipped}, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)

		err := o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "  "}, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "cancelReason")
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, order.RefundNone, o.Refund().Status())
	})

	t.Run("cancelling prepaid orders opens a pending refund", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{order.UPI, order.Card} {
			o := newTestOrder(t, method)

			err := o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "out of stock"}, placedAt)

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, o.Status())
			assert.Equal(t, order.RefundPending, o.Refund().Status(), method.String())
			assert.Equal(t, order.CancelledByAdmin, o.Cancellation().By())
			assert.Equal(t, "out of stock", o.Cancellation().Reason())
		}
	})

	t.Run("cancelling COD orders leaves refund unset", func(t *testing.T) {
		o := newTestOrder(t, order.COD)

		err := o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "changed mind"}, placedAt)

		require.NoError(t, err)
		assert.Equal(t, order.RefundNone, o.Refund().Status())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))

		for _, to := range order.AllStatuses() {
			err := o.ChangeStatus(admin(), order.StatusChange{
				To: to, CancelReason: "again", TrackingID: "T", DeliveryPartner: "P",
			}, placedAt.Add(time.Hour))
			require.ErrorIs(t, err, errs.ErrInvalidTransition, to.String())
		}
		assert.Equal(t, placedAt, o.StatusDates()[order.Cancelled])
	})

	t.Run("owner can cancel while confirmed or processing", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		owner := kernel.NewCustomerActor(o.UserID())

		err := o.ChangeStatus(owner, order.StatusChange{To: order.Cancelled, CancelReason: "ordered twice"}, placedAt)

		require.NoError(t, err)
		assert.Equal(t, order.CancelledByUser, o.Cancellation().By())
		assert.Equal(t, order.RefundPending, o.Refund().Status())
	})

	t.Run("owner cannot cancel once shipped", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{
			To: order.Processing, TrackingID: "TRK123", DeliveryPartner: "BlueDart",
		}, placedAt))
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Shipped}, placedAt))

		owner := kernel.NewCustomerActor(o.UserID())
		err := o.ChangeStatus(owner, order.StatusChange{To: order.Cancelled, CancelReason: "late"}, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Shipped, o.Status())

		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "late"}, placedAt))
	})

	t.Run("customers cannot advance fulfillment or touch other orders", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)

		err := o.ChangeStatus(kernel.NewCustomerActor(o.UserID()), order.StatusChange{
			To: order.Processing, TrackingID: "T", DeliveryPartner: "P",
		}, placedAt)
		require.ErrorIs(t, err, errs.ErrAccessDenied)

		err = o.ChangeStatus(kernel.NewCustomerActor(kernel.NewUUID()), order.StatusChange{
			To: order.Cancelled, CancelReason: "x",
		}, placedAt)
		require.ErrorIs(t, err, errs.ErrAccessDenied)

		err = o.ChangeStatus(kernel.NewAnonymousActor(), order.StatusChange{
			To: order.Cancelled, CancelReason: "x",
		}, placedAt)
		require.ErrorIs(t, err, errs.ErrAccessDenied)

		assert.Equal(t, order.Confirmed, o.Status())
	})
}

func TestOrder_UpdateTracking(t *testing.T) {
	t.Run("should overlay supplied fields", func(t *testing.T) {
		o := newTestOrder(t, order.COD)
		require.NoError(t, o.UpdateTracking(admin(), "TRK1", "BlueDart"))

		require.NoError(t, o.UpdateTracking(admin(), "TRK2", ""))

		assert.Equal(t, "TRK2", o.Tracking().TrackingID())
		assert.Equal(t, "BlueDart", o.Tracking().DeliveryPartner())
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("should require both fields", func(t *testing.T) {
		o := newTestOrder(t, order.COD)

		err := o.UpdateTracking(admin(), "TRK1", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deliveryPartner")
		assert.Empty(t, o.Tracking().TrackingID())
	})

	t.Run("should reject cancelled orders and non admins", func(t *testing.T) {
		o := newTestOrder(t, order.COD)

		require.ErrorIs(t, o.UpdateTracking(kernel.NewCustomerActor(o.UserID()), "T", "P"), errs.ErrAccessDenied)

		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))
		require.ErrorIs(t, o.UpdateTracking(admin(), "T", "P"), errs.ErrInvalidTransition)
	})
}

func TestOrder_CompleteRefund(t *testing.T) {
	refundedAt := placedAt.Add(48 * time.Hour)

	t.Run("completes exactly once", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))

		err := o.CompleteRefund(admin(), "UTR000111222", refundedAt)

		require.NoError(t, err)
		assert.Equal(t, order.RefundCompleted, o.Refund().Status())
		assert.Equal(t, "UTR000111222", o.Refund().UTRNumber())
		require.NotNil(t, o.Refund().RefundedAt())
		assert.Equal(t, refundedAt, *o.Refund().RefundedAt())

		err = o.CompleteRefund(admin(), "UTR999999999", refundedAt.Add(time.Hour))
		require.ErrorIs(t, err, errs.ErrRefundNotApplicable)
		assert.Equal(t, "UTR000111222", o.Refund().UTRNumber())
		assert.Equal(t, refundedAt, *o.Refund().RefundedAt())
	})

	t.Run("requires a UTR", func(t *testing.T) {
		o := newTestOrder(t, order.Card)
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))

		err := o.CompleteRefund(admin(), " ", refundedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.RefundPending, o.Refund().Status())
	})

	t.Run("rejects COD and active orders", func(t *testing.T) {
		cod := newTestOrder(t, order.COD)
		require.NoError(t, cod.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))
		require.ErrorIs(t, cod.CompleteRefund(admin(), "UTR000111222", refundedAt), errs.ErrRefundNotApplicable)

		active := newTestOrder(t, order.UPI)
		require.ErrorIs(t, active.CompleteRefund(admin(), "UTR000111222", refundedAt), errs.ErrRefundNotApplicable)
	})

	t.Run("admin only", func(t *testing.T) {
		o := newTestOrder(t, order.UPI)
		require.NoError(t, o.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))

		err := o.CompleteRefund(kernel.NewCustomerActor(o.UserID()), "UTR000111222", refundedAt)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, order.RefundPending, o.Refund().Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	original := newTestOrder(t, order.UPI)
	require.NoError(t, original.ChangeStatus(admin(), order.StatusChange{To: order.Cancelled, CancelReason: "x"}, placedAt))

	restored, err := order.RestoreOrder(order.RestoreParams{
		ID:              original.ID(),
		Code:            original.Code(),
		UserID:          original.UserID(),
		Items:           original.Items(),
		Charges:         original.Charges(),
		ShippingAddress: original.ShippingAddress(),
		PaymentMethod:   original.Payment().Method(),
		UTRNumber:       original.Payment().UTRNumber(),
		Status:          original.Status(),
		StatusDates:     original.StatusDates(),
		CancelReason:    original.Cancellation().Reason(),
		CancelledBy:     original.Cancellation().By(),
		RefundStatus:    original.Refund().Status(),
		Version:         3,
	})

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, order.Cancelled, restored.Status())
	assert.Equal(t, order.RefundPending, restored.Refund().Status())
	assert.Equal(t, 3, restored.Version())

	require.NoError(t, restored.CompleteRefund(admin(), "UTR000111222", placedAt))
}
