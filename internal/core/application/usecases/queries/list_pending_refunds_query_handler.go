package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListPendingRefundsQueryResponse struct {
	ID            kernel.UUID
	Code          string
	UserID        kernel.UUID
	PaymentMethod string
	TotalPrice    kernel.Money
	CancelledBy   string
	CancelledAt   time.Time
}

// ListPendingRefundsQueryHandler backs the admin refund queue and the daily
// refund report.
type ListPendingRefundsQueryHandler struct {
	db *gorm.DB
}

func NewListPendingRefundsQueryHandler(db *gorm.DB) ListPendingRefundsQueryHandler {
	return ListPendingRefundsQueryHandler{db: db}
}

func (h ListPendingRefundsQueryHandler) Handle(
	ctx context.Context,
	query ListPendingRefundsQuery,
) ([]ListPendingRefundsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	refunds := make([]ListPendingRefundsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			user_id,
			payment_method,
			total_price,
			cancelled_by,
			cancelled_at
		FROM orders
		WHERE status = ? AND refund_status = ? AND payment_method <> ?
		ORDER BY cancelled_at, code
	`, order.Cancelled.String(), order.RefundPending.String(), order.COD.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListPendingRefundsQueryResponse
		var id, userID uuid.UUID
		var total decimal.Decimal

		if err = rows.Scan(
			&id,
			&resp.Code,
			&userID,
			&resp.PaymentMethod,
			&total,
			&resp.CancelledBy,
			&resp.CancelledAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		if resp.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.CancelledAt = resp.CancelledAt.UTC()

		refunds = append(refunds, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return refunds, nil
}
