package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"truffle_shuffle/internal/adapters/foursquare"
	server "truffle_shuffle/internal/adapters/http_server"
	"truffle_shuffle/internal/adapters/memory"
	"truffle_shuffle/internal/adapters/observability"
	redisad "truffle_shuffle/internal/adapters/redis"
	"truffle_shuffle/internal/app"
	"truffle_shuffle/internal/domain"
	"truffle_shuffle/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	var search domain.VenueSearcher
	if client, err := foursquare.New(cfg.FSQBase, cfg.FSQClientID, cfg.FSQSecret, cfg.FSQVersion); err != nil {
		log.Warn().Err(err).Msg("discover disabled until credentials are set")
	} else {
		search = client
	}
	cache := newCache(cfg)
	svc := app.NewDiscoverService(search, cache)

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{D: svc})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("cache", cfg.CacheBackend).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	log.Info().Msg("API stopped")
}

func newCache(cfg shared.Config) domain.VenueCache {
	switch cfg.CacheBackend {
	case "redis":
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
		return c
	case "memory":
	default:
		log.Warn().Str("backend", cfg.CacheBackend).Msg("unknown cache backend, using memory")
	}
	return memory.New(cfg.CacheTTL)
}
