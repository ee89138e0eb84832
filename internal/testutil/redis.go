package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetupTestRedis connects to the local redis instance, skipping when
// none is reachable.
func SetupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test redis not available: %v", err)
	}

	return client
}

// CleanupTestRedis flushes the test DB and closes the client.
func CleanupTestRedis(t *testing.T, client *redis.Client) {
	if client == nil {
		return
	}

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Logf("failed to flush test redis: %v", err)
	}

	client.Close()
}
