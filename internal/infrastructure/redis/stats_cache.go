package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"streetmarket/internal/domain"

	"github.com/go-redis/redis/v8"
)

// RedisStatsCache keeps computed financial stats for a short window so a
// dashboard refresh does not rescan three tables. Entries expire; the
// aggregation stays the source of truth.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func (r *RedisStatsCache) GetFinancialStats(ctx context.Context, key string) (*domain.FinancialStats, error) {
	data, err := r.client.Get(ctx, statsKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.FinancialStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *RedisStatsCache) SetFinancialStats(ctx context.Context, key string, stats *domain.FinancialStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, statsKey(key), data, r.ttl).Err()
}

func statsKey(key string) string {
	return fmt.Sprintf("finstats:%s", key)
}
