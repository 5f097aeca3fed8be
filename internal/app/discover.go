package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"truffle_shuffle/internal/domain"
)

type DiscoverResult struct {
	Venues []domain.Venue
	Cached bool
}

// DiscoverService answers location searches from the cache, falling back to
// the upstream searcher on a miss. A nil searcher means credentials are absent.
type DiscoverService struct {
	search domain.VenueSearcher
	cache  domain.VenueCache
}

func NewDiscoverService(s domain.VenueSearcher, c domain.VenueCache) *DiscoverService {
	return &DiscoverService{search: s, cache: c}
}

func (s *DiscoverService) Configured() bool { return s.search != nil }

func (s *DiscoverService) Discover(ctx context.Context, q domain.SearchQuery) (DiscoverResult, error) {
	if !s.Configured() {
		return DiscoverResult{}, domain.ErrNotConfigured
	}

	key := q.CacheKey()
	venues, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// a broken cache degrades to a fetch
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	if ok {
		return DiscoverResult{Venues: venues, Cached: true}, nil
	}

	venues, err = s.Refresh(ctx, q)
	if err != nil {
		return DiscoverResult{}, err
	}
	return DiscoverResult{Venues: venues, Cached: false}, nil
}

// Refresh fetches q upstream and overwrites its cache entry, ignoring any cached value.
func (s *DiscoverService) Refresh(ctx context.Context, q domain.SearchQuery) ([]domain.Venue, error) {
	if !s.Configured() {
		return nil, domain.ErrNotConfigured
	}

	raw, err := s.search.SearchVenues(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	venues := mapVenues(raw)

	key := q.CacheKey()
	if err := s.cache.Set(ctx, key, venues); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	log.Debug().Str("key", key).Int("count", len(venues)).Msg("venues fetched")
	return venues, nil
}

func (s *DiscoverService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
