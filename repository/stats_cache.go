package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps one JSON snapshot of the dashboard per shop in Redis.
// Each shop also has a version counter bumped on every invalidation, so a
// snapshot computed before an invalidation is never written back.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(shopID uint) string {
	return fmt.Sprintf("stats:shop:%d", shopID)
}

func statsVersionKey(shopID uint) string {
	return fmt.Sprintf("stats:shop:%d:version", shopID)
}

// Get decodes the cached snapshot into out. The bool reports a hit.
func (c *StatsCache) Get(ctx context.Context, shopID uint, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, statsKey(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Version is read before computing a snapshot and handed back to SetIfVersion.
func (c *StatsCache) Version(ctx context.Context, shopID uint) (int64, error) {
	v, err := c.rdb.Get(ctx, statsVersionKey(shopID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetIfVersion stores v only while the shop is still at version. The bool
// reports whether it was stored.
func (c *StatsCache) SetIfVersion(ctx context.Context, shopID uint, version int64, v any) (bool, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	vkey := statsVersionKey(shopID)
	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Int64()
		if errors.Is(err, redis.Nil) {
			cur, err = 0, nil
		}
		if err != nil {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, statsKey(shopID), raw, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while we were writing
		return false, nil
	}
	return stored, err
}

// Invalidate drops the snapshot and moves the shop to a new version.
func (c *StatsCache) Invalidate(ctx context.Context, shopID uint) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, statsVersionKey(shopID))
		pipe.Del(ctx, statsKey(shopID))
		return nil
	})
	return err
}
