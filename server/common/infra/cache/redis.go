package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a redis client and verifies the connection before
// handing it out, so callers can disable caching on a dead address
// instead of failing per request.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
