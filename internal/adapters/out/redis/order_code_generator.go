// Package redis issues sequential order codes from per-month Redis counters.
package redis

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/go-redis/redis/v8"
)

// counterTTL keeps a month's counter around well past the month it numbers.
const counterTTL = 400 * 24 * time.Hour

// OrderCodeGenerator hands out <PREFIX>-<YYMM>-<NNNN> codes. Each month has its
// own INCR counter so numbering restarts at 1, and INCR is atomic across every
// instance sharing the Redis database.
type OrderCodeGenerator struct {
	rdb    *redis.Client
	prefix string
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

func NewOrderCodeGenerator(rdb *redis.Client, prefix string) *OrderCodeGenerator {
	return &OrderCodeGenerator{rdb: rdb, prefix: prefix}
}

func (g *OrderCodeGenerator) Next(ctx context.Context, issuedAt time.Time) (order.Code, error) {
	key := g.counterKey(issuedAt)

	var incr *redis.IntCmd
	_, err := g.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, counterTTL)
		return nil
	})
	if err != nil {
		return order.Code{}, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	return order.NewCode(g.prefix, issuedAt, incr.Val())
}

func (g *OrderCodeGenerator) counterKey(issuedAt time.Time) string {
	return fmt.Sprintf("order_code:%s:%s", g.prefix, issuedAt.UTC().Format("0601"))
}
