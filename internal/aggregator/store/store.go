package store

import (
	"context"
	"time"
)

// Store é a abstração de cache TTL injetada no orquestrador
// Qualquer backend precisa ser seguro sob leituras/escritas concorrentes
type Store interface {
	// Get desserializa o valor em dst e retorna se houve hit
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set grava o valor com o TTL dado; a expiração nunca é estendida depois
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Invalidate remove a chave, se existir
	Invalidate(ctx context.Context, key string) error
}
