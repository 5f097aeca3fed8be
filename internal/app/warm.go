package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"truffle_shuffle/internal/domain"
)

type WarmReport struct {
	Warmed int
	Failed []string // area slugs
}

// WarmService refreshes the cache for a set of areas ahead of user traffic.
type WarmService struct {
	discover *DiscoverService
	workers  int64
	rl       *rate.Limiter
}

func NewWarmService(d *DiscoverService, workers, rps int) *WarmService {
	if workers <= 0 {
		workers = 1
	}
	if rps <= 0 {
		rps = 2
	}
	return &WarmService{
		discover: d,
		workers:  int64(workers),
		rl:       rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (w *WarmService) Warm(ctx context.Context, areas []domain.Area) (WarmReport, error) {
	if !w.discover.Configured() {
		return WarmReport{}, domain.ErrNotConfigured
	}

	sem := semaphore.NewWeighted(w.workers)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		rep WarmReport
	)

	for _, a := range areas {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return rep, err
		}

		wg.Add(1)
		go func(a domain.Area) {
			defer wg.Done()
			defer sem.Release(1)

			err := w.warmArea(ctx, a)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Str("area", a.Slug).Err(err).Msg("warm failed")
				rep.Failed = append(rep.Failed, a.Slug)
				return
			}
			rep.Warmed++
			log.Info().Str("area", a.Slug).Msg("warm ok")
		}(a)
	}

	wg.Wait()
	return rep, nil
}

func (w *WarmService) warmArea(ctx context.Context, a domain.Area) error {
	q, err := domain.NewSearchQuery(a.Lat, a.Lon, a.Radius)
	if err != nil {
		return err
	}
	if err := w.rl.Wait(ctx); err != nil {
		return err
	}
	_, err = w.discover.Refresh(ctx, q)
	return err
}
