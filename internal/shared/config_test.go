package shared_test

import (
	"testing"
	"time"

	"truffle_shuffle/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CACHE_TTL_SECONDS", "CACHE_BACKEND", "FOURSQUARE_CLIENT_ID", "FOURSQUARE_CLIENT_SECRET", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.HTTPAddr != ":5001" || c.CacheTTL != 24*time.Hour || c.CacheBackend != "memory" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.FoursquareConfigured() {
		t.Fatalf("expected unconfigured without credentials")
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "*" {
		t.Fatalf("cors origins: %v", c.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FOURSQUARE_CLIENT_ID", "id")
	t.Setenv("FOURSQUARE_CLIENT_SECRET", "secret")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://truffle.example ,")
	t.Setenv("WARM_WORKERS", "nope")

	c := shared.Load()
	if !c.FoursquareConfigured() {
		t.Fatalf("expected configured")
	}
	if c.CacheTTL != time.Minute || c.CacheBackend != "redis" {
		t.Fatalf("unexpected cache config: %+v", c)
	}
	if len(c.CORSOrigins) != 2 || c.CORSOrigins[1] != "https://truffle.example" {
		t.Fatalf("cors origins: %v", c.CORSOrigins)
	}
	if c.WarmWorkers != 4 {
		t.Fatalf("invalid int should fall back to default, got %d", c.WarmWorkers)
	}
}

func TestAreasBySlug(t *testing.T) {
	all, unknown := shared.AreasBySlug(nil)
	if len(all) != len(shared.Areas) || unknown != nil {
		t.Fatalf("empty filter should return all areas")
	}
	got, unknown := shared.AreasBySlug([]string{"japantown", "atlantis"})
	if len(got) != 1 || got[0].Name != "Japantown" {
		t.Fatalf("unexpected areas: %+v", got)
	}
	if len(unknown) != 1 || unknown[0] != "atlantis" {
		t.Fatalf("unexpected unknown: %v", unknown)
	}
}
