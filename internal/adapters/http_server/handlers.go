// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"truffle_shuffle/internal/app"
	"truffle_shuffle/internal/domain"
)

// Discoverer is the slice of app.DiscoverService the handlers use.
type Discoverer interface {
	Discover(ctx context.Context, q domain.SearchQuery) (app.DiscoverResult, error)
	ClearCache(ctx context.Context) error
	Configured() bool
}

type Handlers struct{ D Discoverer }

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type discoverResponse struct {
	Restaurants []domain.Venue `json:"restaurants"`
	Cached      bool           `json:"cached"`
	Count       int            `json:"count"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.index)
	s.mux.Get("/api/health", h.health)
	s.mux.Get("/api/discover", h.discover)
	s.mux.Post("/api/clear-cache", h.clearCache)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorBody{Error: title, Message: message})
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Truffle Shuffle Backend API",
		"endpoints": map[string]string{
			"health":      "/api/health",
			"discover":    "/api/discover",
			"clear_cache": "/api/clear-cache (POST)",
		},
	})
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"api_configured": h.D.Configured(),
	})
}

func (h *Handlers) clearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.D.ClearCache(r.Context()); err != nil {
		log.Error().Err(err).Msg("clear cache failed")
		writeError(w, http.StatusInternalServerError, "Failed to clear cache", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cache cleared successfully"})
}

func (h *Handlers) discover(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}

	res, err := h.D.Discover(r.Context(), q)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError,
			"Foursquare API credentials not configured",
			"Please set FOURSQUARE_CLIENT_ID and FOURSQUARE_CLIENT_SECRET in the environment or .env file")
		return
	case errors.Is(err, domain.ErrUpstream):
		log.Error().Err(err).Str("key", q.CacheKey()).Msg("upstream search failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch data from Foursquare", err.Error())
		return
	default:
		log.Error().Err(err).Msg("discover failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	venues := res.Venues
	if venues == nil {
		venues = []domain.Venue{}
	}
	writeJSON(w, http.StatusOK, discoverResponse{Restaurants: venues, Cached: res.Cached, Count: len(venues)})
}

// parseSearchQuery reads lat/lon/radius, defaulting any that are absent.
func parseSearchQuery(r *http.Request) (domain.SearchQuery, error) {
	def := domain.DefaultSearchQuery()
	qs := r.URL.Query()

	lat, err := floatParam(qs.Get("lat"), def.Lat, "lat")
	if err != nil {
		return domain.SearchQuery{}, err
	}
	lon, err := floatParam(qs.Get("lon"), def.Lon, "lon")
	if err != nil {
		return domain.SearchQuery{}, err
	}
	radius := def.Radius
	if s := strings.TrimSpace(qs.Get("radius")); s != "" {
		// the frontend may send "3000" or "3000.0"
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.SearchQuery{}, errors.New("radius must be a number of meters")
		}
		radius = int(f)
	}
	return domain.NewSearchQuery(lat, lon, radius)
}

func floatParam(s string, def float64, name string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return f, nil
}
