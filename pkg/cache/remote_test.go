package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Remote backends are only exercised when a server is available:
//
//	CISTERCIAN_REDIS_ADDR=localhost:6379 go test ./pkg/cache
//	CISTERCIAN_MONGO_URI=mongodb://localhost:27017 go test ./pkg/cache

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("CISTERCIAN_REDIS_ADDR")
	if addr == "" {
		t.Skip("CISTERCIAN_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("CISTERCIAN_MONGO_URI")
	if uri == "" {
		t.Skip("CISTERCIAN_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, uri, "cistercian_test", "cache")
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseCache(t, c)

	if err := c.Set(ctx, "expired", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry should miss before the TTL monitor runs")
	}
}
