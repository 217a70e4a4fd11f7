package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatusHandler(uow *MockUoW, publisher *MockPublisher) commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		orderFactory{uow: uow}, publisher, fixedClock{}, slog.New(slog.DiscardHandler),
	)
}

func TestNewChangeOrderStatusCommand(t *testing.T) {
	ref := order.ReferenceByID(kernel.NewUUID())

	t.Run("requires a signed in actor", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewAnonymousActor(), ref, order.StatusChange{To: order.Cancelled})
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("requires a reference and a known status", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(
			kernel.NewAdminActor(kernel.NewUUID()), order.Reference{}, order.StatusChange{},
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestChangeOrderStatusCommandHandler_Handle_AdminMovesToProcessing(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, kernel.NewUUID(), order.UPI)
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewAdminActor(kernel.NewUUID()),
		order.ReferenceByCode(o.Code()),
		order.StatusChange{To: order.Processing, TrackingID: "TRK123", DeliveryPartner: "BlueDart"},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByCode", ctx, o.Code()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []ports.OrderEvent) bool {
			return len(events) == 1 && events[0].Type == ports.OrderStatusChanged && events[0].Status == "processing"
		})).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	got, err := newStatusHandler(uow, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Processing, got.Status())
	assert.Equal(t, "TRK123", got.Tracking().TrackingID())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CustomerCancelStartsRefund(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	o := placedOrder(t, userID, order.UPI)
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewCustomerActor(userID),
		order.ReferenceByID(o.ID()),
		order.StatusChange{To: order.Cancelled, CancelReason: "ordered twice"},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	got, err := newStatusHandler(uow, publisher).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, got.Status())
	assert.Equal(t, order.CancelledByUser, got.Cancellation().By())
	assert.Equal(t, order.RefundPending, got.Refund().Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_RejectedTransitionWritesNothing(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	o := placedOrder(t, userID, order.COD)
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewCustomerActor(kernel.NewUUID()),
		order.ReferenceByID(o.ID()),
		order.StatusChange{To: order.Cancelled, CancelReason: "not mine"},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, publisher).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, order.Confirmed, o.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrentUpdateLoses(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, kernel.NewUUID(), order.COD)
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewAdminActor(kernel.NewUUID()),
		order.ReferenceByID(o.ID()),
		order.StatusChange{To: order.Cancelled, CancelReason: "out of stock"},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("version")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, new(MockPublisher)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewAdminActor(kernel.NewUUID()), order.ReferenceByID(id), order.StatusChange{To: order.Shipped},
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = newStatusHandler(uow, new(MockPublisher)).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChangeOrderStatusCommand(
		kernel.NewAdminActor(kernel.NewUUID()), order.ReferenceByID(kernel.NewUUID()), order.StatusChange{To: order.Shipped},
	)
	require.NoError(t, err)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	_, err = newStatusHandler(uow, new(MockPublisher)).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
