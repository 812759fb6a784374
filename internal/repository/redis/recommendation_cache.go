package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopifyPulse/domain"
)

// RecommendationCache keeps generated recommendation lists hot so the
// dashboard does not re-run the engine on every poll.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RecommendationCache) Get(ctx context.Context, key string) ([]domain.Recommendation, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get recommendations from Redis: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, true, nil
}

func (r *RecommendationCache) Set(ctx context.Context, key string, recs []domain.Recommendation) error {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}

// InvalidateStore drops every cached list for a store, across periods
// and limits.
func (r *RecommendationCache) InvalidateStore(ctx context.Context, storeID uint) error {
	pattern := fmt.Sprintf("recommendations:%d:*", storeID)

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}
