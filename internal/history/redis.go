package history

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis list per conversation, trimmed to the
// window cap and expired after the configured TTL of inactivity.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the Redis at url (redis:// form) and verifies the
// connection with a ping.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func key(convID string) string {
	return "moments:" + convID
}

// Append pushes the moment, trims the window, and refreshes the TTL in a
// single pipeline round trip.
func (r *Redis) Append(ctx context.Context, convID, moment string) error {
	if moment == "" {
		return nil
	}

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key(convID), moment)
	pipe.LTrim(ctx, key(convID), -maxMoments, -1)
	if r.ttl > 0 {
		pipe.Expire(ctx, key(convID), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append moment: %w", err)
	}
	return nil
}

// Recent returns up to n moments, oldest first.
func (r *Redis) Recent(ctx context.Context, convID string, n int) ([]string, error) {
	start := int64(0)
	if n > 0 {
		start = int64(-n)
	}
	moments, err := r.client.LRange(ctx, key(convID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read moments: %w", err)
	}
	return moments, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
