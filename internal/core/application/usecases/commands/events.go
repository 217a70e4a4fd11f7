package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"
)

// publishAfterCommit hands events to the publisher. The transaction is already
// committed, so a failure is logged and not returned.
func publishAfterCommit(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, events ...ports.OrderEvent) {
	if err := publisher.Publish(ctx, events...); err != nil {
		for _, event := range events {
			logger.ErrorContext(ctx, "Failed to publish order event",
				"event_type", event.Type,
				"order_code", event.OrderCode,
				"error", err,
			)
		}
	}
}
