package queries_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

func (suite *ReadModelQueriesTestSuite) TestListPendingRefunds_OnlyPrepaidCancelledAwaitingRefund() {
	admin := kernel.NewAdminActor(kernel.NewUUID())

	first := suite.place(kernel.NewUUID(), order.UPI, now.Add(-72*time.Hour))
	second := suite.place(kernel.NewUUID(), order.Card, now.Add(-48*time.Hour))
	cod := suite.place(kernel.NewUUID(), order.COD, now.Add(-48*time.Hour))
	refunded := suite.place(kernel.NewUUID(), order.UPI, now.Add(-48*time.Hour))
	suite.place(kernel.NewUUID(), order.UPI, now.Add(-24*time.Hour))

	suite.cancel(second, now.Add(-2*time.Hour))
	suite.cancel(first, now.Add(-time.Hour))
	suite.cancel(cod, now.Add(-time.Hour))
	suite.cancel(refunded, now.Add(-time.Hour))
	suite.Require().NoError(refunded.CompleteRefund(admin, "REFUND0000001", now))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), refunded))

	result, err := suite.refunds.Handle(context.Background(), queries.NewListPendingRefundsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(second.ID()))
	suite.Equal("CARD", result[0].PaymentMethod)
	suite.Equal("user", result[0].CancelledBy)
	suite.True(result[0].CancelledAt.Equal(now.Add(-2 * time.Hour)))
	suite.True(result[0].UserID.IsEqual(second.UserID()))
	suite.True(result[1].ID.IsEqual(first.ID()))
	suite.True(result[1].TotalPrice.IsEqual(kernel.MoneyFromInt(1000)))
}

func (suite *ReadModelQueriesTestSuite) TestListPendingRefunds_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.refunds.Handle(context.Background(), queries.NewListPendingRefundsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ReadModelQueriesTestSuite) TestListPendingRefunds_InvalidQuery_ReturnsError() {
	result, err := suite.refunds.Handle(context.Background(), queries.ListPendingRefundsQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, queries.ErrListPendingRefundsQueryIsNotConstructed)
}
