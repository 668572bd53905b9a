package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/looklush/storefront/pkg/metrics"
)

// Redis is a Store + Ephemeral backed by a Redis instance. Durable entity
// keys are written without expiry; ephemeral slots use SET with TTL and
// GETDEL for the one-shot read.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr, password, prefix string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kvstore: redis ping: %w", err)
	}

	return &Redis{rdb: rdb, prefix: prefix}, nil
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) Get(key string, dest interface{}) bool {
	val, err := r.rdb.Get(context.Background(), r.key(key)).Result()
	if err != nil {
		metrics.StoreMisses.WithLabelValues("redis").Inc()
		return false
	}
	metrics.StoreHits.WithLabelValues("redis").Inc()
	return json.Unmarshal([]byte(val), dest) == nil
}

func (r *Redis) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: marshal %q: %w", key, err)
	}
	return r.rdb.Set(context.Background(), r.key(key), data, 0).Err()
}

func (r *Redis) Delete(key string) error {
	return r.rdb.Del(context.Background(), r.key(key)).Err()
}

func (r *Redis) PutTTL(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: marshal %q: %w", key, err)
	}
	return r.rdb.Set(context.Background(), r.key(key), data, ttl).Err()
}

func (r *Redis) Take(key string, dest interface{}) bool {
	val, err := r.rdb.GetDel(context.Background(), r.key(key)).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error { return r.rdb.Close() }

var (
	_ Store     = (*Redis)(nil)
	_ Ephemeral = (*Redis)(nil)
)
