package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	t.Cleanup(mr.Close)

	store := NewRedis(RedisOptions{Addr: mr.Addr()})
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedis_SetAndGet(t *testing.T) {
	store, _ := newTestRedis(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))

	val, ok, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestRedis_TTLExpiry(t *testing.T) {
	store, mr := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_KeyPrefix(t *testing.T) {
	store, mr := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	assert.True(t, mr.Exists("japabot:k"))
}
