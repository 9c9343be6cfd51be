package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *LocalCache {
	c, err := NewCache(Config{GCInterval: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "key1", "value1", 0)
	require.NoError(t, err)

	v, err := c.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", v)
}

func TestGetMissing(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "ttl_key", "val", 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = c.Get(ctx, "ttl_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetNX(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "lock", "owner", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "lock", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok) // already held
}

func TestSetNX_AfterExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	ok, _ := c.SetNX(ctx, "lock", "first", 10*time.Millisecond)
	require.True(t, ok)
	time.Sleep(20 * time.Millisecond)

	ok, err := c.SetNX(ctx, "lock", "second", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompareAndDel(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	_, _ = c.SetNX(ctx, "lock", "owner", time.Minute)

	ok, err := c.CompareAndDel(ctx, "lock", "intruder")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.CompareAndDel(ctx, "lock", "owner")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = c.Get(ctx, "lock")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseTwice(t *testing.T) {
	c, err := NewCache(Config{})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
