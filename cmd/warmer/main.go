// Command warmer refreshes the shared cache for the catalogued areas.
// Usage: warmer [area-slug ...]   (no arguments warms every area)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"truffle_shuffle/internal/adapters/foursquare"
	"truffle_shuffle/internal/adapters/observability"
	redisad "truffle_shuffle/internal/adapters/redis"
	"truffle_shuffle/internal/app"
	"truffle_shuffle/internal/shared"
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.CacheBackend != "redis" {
		log.Fatal().Str("backend", cfg.CacheBackend).Msg("warming needs CACHE_BACKEND=redis; the api cannot see another process's memory")
	}

	areas, unknown := shared.AreasBySlug(os.Args[1:])
	if len(unknown) > 0 {
		log.Fatal().Strs("unknown", unknown).Msg("unknown area slugs")
	}

	client, err := foursquare.New(cfg.FSQBase, cfg.FSQClientID, cfg.FSQSecret, cfg.FSQVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Foursquare client")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cache.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}

	log.Info().
		Int("areas", len(areas)).
		Int("workers", cfg.WarmWorkers).
		Int("rps", cfg.WarmRPS).
		Msg("warmer starting")

	warm := app.NewWarmService(app.NewDiscoverService(client, cache), cfg.WarmWorkers, cfg.WarmRPS)
	rep, err := warm.Warm(ctx, areas)
	if err != nil {
		log.Error().Err(err).Msg("warming aborted")
	}
	log.Info().Int("warmed", rep.Warmed).Strs("failed", rep.Failed).Msg("warming completed")
	if err != nil || len(rep.Failed) > 0 {
		os.Exit(1)
	}
}
