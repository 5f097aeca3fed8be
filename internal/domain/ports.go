package domain

import (
	"context"
	"fmt"
	"math"
)

type VenueSearcher interface {
	SearchVenues(ctx context.Context, q SearchQuery) ([]map[string]any, error)
}

// VenueCache holds normalized results per location key. Implementations own the TTL.
type VenueCache interface {
	Get(ctx context.Context, key string) ([]Venue, bool, error)
	Set(ctx context.Context, key string, venues []Venue) error
	Clear(ctx context.Context) error
}

const (
	DefaultLat    = 37.7749
	DefaultLon    = -122.4194
	DefaultRadius = 25000
	MaxRadius     = 100000
)

// SearchQuery is a location search. Coordinates are rounded to 4 decimals
// (about 11m) so nearby requests share a cache entry.
type SearchQuery struct {
	Lat    float64
	Lon    float64
	Radius int
}

func NewSearchQuery(lat, lon float64, radius int) (SearchQuery, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return SearchQuery{}, fmt.Errorf("%w: lat must be between -90 and 90", ErrInvalidQuery)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return SearchQuery{}, fmt.Errorf("%w: lon must be between -180 and 180", ErrInvalidQuery)
	}
	if radius <= 0 || radius > MaxRadius {
		return SearchQuery{}, fmt.Errorf("%w: radius must be between 1 and %d meters", ErrInvalidQuery, MaxRadius)
	}
	return SearchQuery{Lat: round4(lat), Lon: round4(lon), Radius: radius}, nil
}

func DefaultSearchQuery() SearchQuery {
	return SearchQuery{Lat: DefaultLat, Lon: DefaultLon, Radius: DefaultRadius}
}

// LL formats the coordinates the way the upstream "ll" parameter expects.
func (q SearchQuery) LL() string {
	return fmt.Sprintf("%.4f,%.4f", q.Lat, q.Lon)
}

func (q SearchQuery) CacheKey() string {
	return fmt.Sprintf("discover:%.4f:%.4f:%d", q.Lat, q.Lon, q.Radius)
}

func round4(f float64) float64 {
	r := math.Round(f*1e4) / 1e4
	if r == 0 {
		return 0 // drop negative zero so -0.00001 and 0.00001 share a key
	}
	return r
}
