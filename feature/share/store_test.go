package share

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "abc", "zpayload", time.Hour))
	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "zpayload", got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "abc", "zpayload", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Put(ctx, "abc", "zpayload", time.Hour))
	assert.True(t, srv.Exists("share:abc"))
	assert.Equal(t, time.Hour, srv.TTL("share:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "zpayload", got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	srv.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Unavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	srv.Close()

	_, err := store.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(Config{Store: StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = NewStore(Config{Store: StoreRedis, RedisAddr: "localhost:0"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)

	_, err = NewStore(Config{Store: "etcd"})
	assert.Error(t, err)
}

func TestNewCode(t *testing.T) {
	a, b := NewCode(), NewCode()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
