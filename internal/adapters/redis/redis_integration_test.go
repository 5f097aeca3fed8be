//go:build integration

package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	redisad "truffle_shuffle/internal/adapters/redis"
	"truffle_shuffle/internal/domain"
)

func TestCache_Redis_SetGetClear(t *testing.T) {
	// Start isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	c := redisad.New("127.0.0.1:"+resource.GetPort("6379/tcp"), "", 0, time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	if err := pool.Retry(func() error { return c.Ping(ctx) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	key := domain.DefaultSearchQuery().CacheKey()
	if err := c.Set(ctx, key, []domain.Venue{{ID: "v1", Name: "Mensho"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok || len(got) != 1 || got[0].Name != "Mensho" {
		t.Fatalf("Get: ok=%v err=%v got=%+v", ok, err, got)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatalf("expected miss after Clear")
	}
}
