package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/types"
)

// TaskCache is a best-effort read cache for persisted task batches. A cache
// failure is never fatal; callers fall through to Postgres.
type TaskCache interface {
	GetBatch(ctx context.Context, userID uuid.UUID, date time.Time) ([]*types.Task, bool)
	SetBatch(ctx context.Context, userID uuid.UUID, date time.Time, tasks []*types.Task)
}

type redisTaskCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTaskCache(log *logger.Logger, addr, password string, db int, ttl time.Duration) TaskCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &redisTaskCache{
		log: log.With("service", "RedisTaskCache"),
		rdb: rdb,
		ttl: ttl,
	}
}

func batchKey(userID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("tasks:%s:%s", userID, types.DateOnly(date).Format("2006-01-02"))
}

func (c *redisTaskCache) GetBatch(ctx context.Context, userID uuid.UUID, date time.Time) ([]*types.Task, bool) {
	raw, err := c.rdb.Get(ctx, batchKey(userID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Task cache read failed", "error", err)
		}
		return nil, false
	}
	var tasks []*types.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		c.log.Warn("Task cache entry is not decodable, dropping it", "error", err)
		_ = c.rdb.Del(ctx, batchKey(userID, date)).Err()
		return nil, false
	}
	return tasks, true
}

func (c *redisTaskCache) SetBatch(ctx context.Context, userID uuid.UUID, date time.Time, tasks []*types.Task) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		c.log.Warn("Task cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, batchKey(userID, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Task cache write failed", "error", err)
	}
}

// noopTaskCache is used when no Redis address is configured, and by tests.
type noopTaskCache struct{}

func NewNoopTaskCache() TaskCache {
	return noopTaskCache{}
}

func (noopTaskCache) GetBatch(context.Context, uuid.UUID, time.Time) ([]*types.Task, bool) {
	return nil, false
}

func (noopTaskCache) SetBatch(context.Context, uuid.UUID, time.Time, []*types.Task) {}
