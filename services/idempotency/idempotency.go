// Package idempotency remembers the result of mutating requests that carry
// an Idempotency-Key, so a replayed booking or checkout returns the first
// result instead of being applied twice.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TTL is how long a stored result answers replays.
const TTL = 24 * time.Hour

// Store persists serialized results by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Do runs fn once per (scope, key). An empty key always runs fn. Failed
// calls are not remembered, so the client may retry them with the same key.
func Do[T any](ctx context.Context, store Store, scope, key string, fn func() (*T, error)) (*T, error) {
	if key == "" || store == nil {
		return fn()
	}
	full := scope + ":" + key

	raw, ok, err := store.Get(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err != nil {
			return nil, fmt.Errorf("failed to decode idempotent result: %w", err)
		}
		return &cached, nil
	}

	result, err := fn()
	if err != nil {
		return nil, err
	}
	// The mutation already happened; a lost cache entry only weakens replay.
	if b, err := json.Marshal(result); err == nil {
		_ = store.Put(ctx, full, b, TTL)
	}
	return result, nil
}

// --- Redis ---

// RedisStore keeps results in Redis under a fixed prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "cedarclub:idem:"}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

// --- Memory ---

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryStore is used when the sandbox runs without Redis.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]entry{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(e.expires) {
		delete(s.items, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expires: s.now().Add(ttl)}
	return nil
}
