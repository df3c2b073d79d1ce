package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// RedisCache guarda o snapshot corrente de cada (esporte, data) no Redis
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis do snapshot corrente de um esporte/data
func key(sport, date string) string { return "snapshot:current:" + sport + ":" + date }

// SetCurrent armazena o snapshot corrente com TTL definido
func (r *RedisCache) SetCurrent(ctx context.Context, s events.EnrichmentSnapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(s.Sport, s.DateContext), b, r.TTL).Err()
}
