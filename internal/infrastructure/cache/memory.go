// Package cache implementa las cachés de la aplicación: Redis cuando REDIS_ADDR está
// configurado y go-cache en memoria para desarrollo y tests.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemorySlugCache caché de slugs local al proceso.
type MemorySlugCache struct {
	c *gocache.Cache
}

// NewMemorySlugCache ttl <= 0 usa SlugTTL.
func NewMemorySlugCache(ttl time.Duration) *MemorySlugCache {
	if ttl <= 0 {
		ttl = SlugTTL
	}
	return &MemorySlugCache{c: gocache.New(ttl, 10*time.Minute)}
}

func (m *MemorySlugCache) Get(_ context.Context, slug string) (string, bool, error) {
	v, ok := m.c.Get(slugKey(slug))
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m *MemorySlugCache) Set(_ context.Context, slug, companyID string) error {
	m.c.SetDefault(slugKey(slug), companyID)
	return nil
}

// MemoryRevocations tokens revocados en memoria.
type MemoryRevocations struct {
	c *gocache.Cache
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{c: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.c.Set(revokedKey(tokenID), struct{}{}, ttl)
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := m.c.Get(revokedKey(tokenID))
	return ok, nil
}
