package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"truffle_shuffle/internal/adapters/observability"
	"truffle_shuffle/internal/domain"
)

const keyPrefix = "truffle:"

type stored struct {
	Venues    []domain.Venue `json:"venues"`
	CreatedAt time.Time      `json:"created_at"`
}

// Cache keeps entries in redis so the api and the warmer share them.
// Redis expiry drops old keys; Get also checks CreatedAt against the TTL.
type Cache struct {
	c   *redis.Client
	ttl time.Duration
	now func() time.Time
}

func New(addr, pass string, db int, ttl time.Duration) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewFromClient(c *redis.Client, ttl time.Duration) *Cache {
	return NewFromClientWithClock(c, ttl, time.Now)
}

// NewFromClientWithClock is NewFromClient with an injectable clock.
func NewFromClientWithClock(c *redis.Client, ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{c: c, ttl: ttl, now: now}
}

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func (r *Cache) Get(ctx context.Context, key string) ([]domain.Venue, bool, error) {
	v, err := r.c.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s stored
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, false, err
	}
	if r.now().Sub(s.CreatedAt) >= r.ttl {
		observability.ObserveCache("redis", "expired")
		return nil, false, nil
	}
	observability.ObserveCache("redis", "hit")
	return s.Venues, true, nil
}

func (r *Cache) Set(ctx context.Context, key string, venues []domain.Venue) error {
	b, err := json.Marshal(stored{Venues: venues, CreatedAt: r.now().UTC()})
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, keyPrefix+key, b, r.ttl).Err()
}

// Clear deletes every key under the cache prefix; other keys in the DB are left alone.
// Keys are collected over the full SCAN before any DEL so the cursor never
// walks a keyspace that is shrinking under it.
func (r *Cache) Clear(ctx context.Context) error {
	var keys []string
	iter := r.c.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	for start := 0; start < len(keys); start += 100 {
		end := min(start+100, len(keys))
		if err := r.c.Del(ctx, keys[start:end]...).Err(); err != nil {
			return err
		}
	}
	observability.ObserveCache("redis", "clear")
	return nil
}
