package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache_LocalWithoutRedisAddr(t *testing.T) {
	c, err := NewCache(CacheConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "seed:last_run", "{}", 0))
	v, err := c.Get(ctx, "seed:last_run")
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	_, err = c.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestNewCache_RedisUnreachable(t *testing.T) {
	// Port 1 is never a Redis server; the constructor pings and fails fast.
	_, err := NewCache(CacheConfig{RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
