package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListMyOrdersQueryResponse is one row of the customer's order history.
type ListMyOrdersQueryResponse struct {
	ID           kernel.UUID
	Code         string
	Status       string
	TotalPrice   kernel.Money
	ItemCount    int
	RefundStatus string
	PlacedAt     time.Time
}

// ListMyOrdersQueryHandler reads the order history straight from the orders
// table without loading aggregates.
type ListMyOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListMyOrdersQueryHandler(db *gorm.DB) ListMyOrdersQueryHandler {
	return ListMyOrdersQueryHandler{db: db}
}

func (h ListMyOrdersQueryHandler) Handle(ctx context.Context, query ListMyOrdersQuery) ([]ListMyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListMyOrdersQueryResponse, 0, query.limit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.code,
			o.status,
			o.total_price,
			COALESCE(SUM(i.quantity), 0) AS item_count,
			o.refund_status,
			o.placed_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id
		ORDER BY o.placed_at DESC, o.code DESC
		LIMIT ? OFFSET ?
	`, query.userID.Bytes(), query.limit, query.offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListMyOrdersQueryResponse
		var id uuid.UUID
		var total decimal.Decimal

		if err = rows.Scan(
			&id,
			&resp.Code,
			&resp.Status,
			&total,
			&resp.ItemCount,
			&resp.RefundStatus,
			&resp.PlacedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.PlacedAt = resp.PlacedAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
