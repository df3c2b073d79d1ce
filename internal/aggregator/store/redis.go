package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis é o backend compartilhado, usado quando mais de uma instância
// do aggregator-service precisa enxergar o mesmo cache
type Redis struct {
	R *redis.Client
}

func NewRedis(r *redis.Client) *Redis { return &Redis{R: r} }

func key(k string) string { return "agg:" + k }

func (s *Redis) Get(ctx context.Context, k string, dst any) (bool, error) {
	b, err := s.R.Get(ctx, key(k)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (s *Redis) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key(k), b, ttl).Err()
}

func (s *Redis) Invalidate(ctx context.Context, k string) error {
	return s.R.Del(ctx, key(k)).Err()
}
