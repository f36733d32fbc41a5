// Package rediscache keeps rendered order timelines in Redis.
package rediscache

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "order:history:"

// HistoryCache implements ports.HistoryCache.
type HistoryCache struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *HistoryCache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *HistoryCache {
	return &HistoryCache{c: c, ttl: ttl}
}

func key(orderID kernel.UUID) string {
	return keyPrefix + orderID.String()
}

func (r *HistoryCache) Get(ctx context.Context, orderID kernel.UUID) ([]byte, bool, error) {
	val, err := r.c.Get(ctx, key(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (r *HistoryCache) Set(ctx context.Context, orderID kernel.UUID, value []byte) error {
	if err := r.c.Set(ctx, key(orderID), value, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (r *HistoryCache) Invalidate(ctx context.Context, orderID kernel.UUID) error {
	if err := r.c.Del(ctx, key(orderID)).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (r *HistoryCache) Ping(ctx context.Context) error {
	return errors.Wrap(r.c.Ping(ctx).Err(), "redis ping")
}

func (r *HistoryCache) Close() error {
	return r.c.Close()
}
