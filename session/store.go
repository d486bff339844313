package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value storage behind a session. It plays the part that
// browser local storage plays for a single-page storefront.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}

// MemoryStore keeps values in process memory. Values are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, sid, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[sid][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.data[sid]
	if !ok {
		values = make(map[string]string)
		m.data[sid] = values
	}
	values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.data[sid]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		delete(m.data, sid)
	}
	return nil
}

// RedisStore keeps values in Redis under storefront:session:<sid>:<key>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) getKey(sid, key string) string {
	return fmt.Sprintf("storefront:session:%s:%s", sid, key)
}

func (r *RedisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.getKey(sid, key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	return r.client.Set(ctx, r.getKey(sid, key), value, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.getKey(sid, k))
	}
	return r.client.Del(ctx, full...).Err()
}
