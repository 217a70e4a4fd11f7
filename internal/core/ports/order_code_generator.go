package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderCodeGenerator issues sequential order codes. Sequences are per month;
// a code handed out for an order that then fails to commit is never reused.
type OrderCodeGenerator interface {
	Next(ctx context.Context, issuedAt time.Time) (order.Code, error)
}
