package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis publishes events to Redis Streams, one stream key per event
// stream (events:orders, events:stock, ...).
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a Redis Streams sink and verifies the connection.
func NewRedis(addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{rdb: rdb}, nil
}

// Publish appends one event to the stream's key via XADD.
func (r *Redis) Publish(ctx context.Context, stream string, payload []byte) error {
	err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: fmt.Sprintf("events:%s", stream),
		Values: map[string]interface{}{"payload": payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd to stream %s failed: %w", stream, err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
