package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/freshbreeze-api/pkg/config"
)

// SlugTTL vida de una entrada slug → company id.
const SlugTTL = 24 * time.Hour

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func slugKey(slug string) string { return "tenant:slug:" + slug }

func revokedKey(tokenID string) string { return "auth:revoked:" + tokenID }

// RedisSlugCache caché de slugs compartida entre instancias.
type RedisSlugCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlugCache ttl <= 0 usa SlugTTL.
func NewRedisSlugCache(client *redis.Client, ttl time.Duration) *RedisSlugCache {
	if ttl <= 0 {
		ttl = SlugTTL
	}
	return &RedisSlugCache{client: client, ttl: ttl}
}

func (c *RedisSlugCache) Get(ctx context.Context, slug string) (string, bool, error) {
	id, err := c.client.Get(ctx, slugKey(slug)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (c *RedisSlugCache) Set(ctx context.Context, slug, companyID string) error {
	return c.client.Set(ctx, slugKey(slug), companyID, c.ttl).Err()
}

// RedisRevocations tokens revocados; la clave expira cuando el token habría expirado.
type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	return n > 0, err
}
