package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/cache"
)

func TestMemorySlugCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemorySlugCache(time.Minute)

	_, ok, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "acme", "c-1"))
	id, ok, err := c.Get(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c-1", id)
}

func TestMemoryRevocations_ExpiraConElToken(t *testing.T) {
	ctx := context.Background()
	r := cache.NewMemoryRevocations()

	require.NoError(t, r.Revoke(ctx, "jti-1", 50*time.Millisecond))
	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	other, _ := r.IsRevoked(ctx, "jti-2")
	assert.False(t, other)

	time.Sleep(80 * time.Millisecond)
	revoked, _ = r.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
}
