package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/mlindgren/wirecut/pkg/graphio"
)

// redisKeyPrefix namespaces wirecut snapshots inside a shared Redis.
const redisKeyPrefix = "wirecut:graph:"

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string // host:port (e.g. "localhost:6379")
	Password string // optional
	DB       int    // optional database index
}

// RedisStore persists snapshots as JSON values in Redis.
// Suitable for multi-instance API deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Save stores the snapshot as a JSON value.
func (s *RedisStore) Save(ctx context.Context, name string, g graphio.Graph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+name, data, 0).Err()
}

// Load retrieves a snapshot by name.
func (s *RedisStore) Load(ctx context.Context, name string) (graphio.Graph, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if err == redis.Nil {
		return graphio.Graph{}, ErrNotFound
	}
	if err != nil {
		return graphio.Graph{}, err
	}
	var g graphio.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return graphio.Graph{}, err
	}
	return g, nil
}

// List returns all snapshot names, sorted.
// Uses SCAN to avoid blocking Redis on large keyspaces.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, redisKeyPrefix+name).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
