package store

import (
	"container/list"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory é o backend em memória: mapa + lista LRU com limite de capacidade
// Expiração é checada de forma preguiçosa na leitura; acima da capacidade
// a entrada menos recentemente usada é descartada
type Memory struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	lru      *list.List // frente = mais recente

	now func() time.Time // substituível em teste

	// Callbacks de métricas
	OnHit      func()
	OnMiss     func()
	OnEviction func()
}

type memEntry struct {
	key       string
	blob      []byte
	expiresAt time.Time
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 256
	}
	return &Memory{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	el, ok := m.entries[key]
	if !ok {
		m.mu.Unlock()
		m.miss()
		return false, nil
	}

	ent := el.Value.(*memEntry)
	if m.now().After(ent.expiresAt) {
		// Entrada vencida conta como miss e é removida na hora
		m.lru.Remove(el)
		delete(m.entries, key)
		m.mu.Unlock()
		m.miss()
		return false, nil
	}

	m.lru.MoveToFront(el)
	blob := ent.blob
	m.mu.Unlock()

	if m.OnHit != nil {
		m.OnHit()
	}
	return true, json.Unmarshal(blob, dst)
}

func (m *Memory) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		ent := el.Value.(*memEntry)
		ent.blob = blob
		ent.expiresAt = m.now().Add(ttl)
		m.lru.MoveToFront(el)
		return nil
	}

	m.entries[key] = m.lru.PushFront(&memEntry{
		key:       key,
		blob:      blob,
		expiresAt: m.now().Add(ttl),
	})

	for m.lru.Len() > m.capacity {
		back := m.lru.Back()
		ent := back.Value.(*memEntry)
		m.lru.Remove(back)
		delete(m.entries, ent.key)
		if m.OnEviction != nil {
			m.OnEviction()
		}
	}

	return nil
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		m.lru.Remove(el)
		delete(m.entries, key)
	}
	return nil
}

// Len retorna o número de entradas correntes (inclui vencidas ainda não lidas)
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

func (m *Memory) miss() {
	if m.OnMiss != nil {
		m.OnMiss()
	}
}
