// Package cache implementa el SnapshotCache del servicio de reportes.
// La implementación Redis guarda respuestas calculadas con TTL corto; la
// Noop permite operar sin Redis (CACHE_ADDR vacío) sin ramas especiales en
// los casos de uso.
package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisSnapshotCache cache de snapshots respaldado por Redis.
type RedisSnapshotCache struct {
	client *redis.Client
}

// NewRedisSnapshotCache construye el cache contra la instancia indicada.
func NewRedisSnapshotCache(addr, password string, db int) *RedisSnapshotCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSnapshotCache{client: client}
}

// Ping verifica la conectividad con Redis.
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

// Get devuelve el valor cacheado. Una clave ausente es miss, no error.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set guarda el valor con la vigencia indicada.
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if len(value) == 0 {
		return nil
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}
