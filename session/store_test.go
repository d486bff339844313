package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, found, err := store.Get(ctx, "s1", "user_id")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "s1", "user_id", "42"))
	require.NoError(t, store.Set(ctx, "s1", "user_email", "a@b.ru"))
	require.NoError(t, store.Set(ctx, "s2", "user_id", "7"))

	v, found, err := store.Get(ctx, "s1", "user_id")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "42", v)

	require.NoError(t, store.Delete(ctx, "s1", "user_id", "user_email"))
	_, found, _ = store.Get(ctx, "s1", "user_email")
	assert.False(t, found)

	v, found, _ = store.Get(ctx, "s2", "user_id")
	assert.True(t, found)
	assert.Equal(t, "7", v)

	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	exerciseStore(t, store)
}

func TestRedisStore_KeysAndTTL(t *testing.T) {
	store, mr := newRedisStore(t, 30*time.Minute)
	require.NoError(t, store.Set(context.Background(), "abc", "user_email", "x@y.z"))

	got, err := mr.Get("storefront:session:abc:user_email")
	require.NoError(t, err)
	assert.Equal(t, "x@y.z", got)
	assert.Equal(t, 30*time.Minute, mr.TTL("storefront:session:abc:user_email"))

	mr.FastForward(31 * time.Minute)
	_, found, err := store.Get(context.Background(), "abc", "user_email")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	mr.Close()

	_, _, err := store.Get(context.Background(), "s", "user_id")
	assert.Error(t, err)
}
