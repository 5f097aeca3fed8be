package app

import (
	"math"
	"strconv"
	"strings"

	"truffle_shuffle/internal/domain"
)

const (
	metersPerMile    = 1609.34
	defaultPrice     = 2
	defaultCuisine   = "Restaurant"
	noAddress        = "Address not available"
	hoursPlaceholder = "Hours not available"
)

// cuisineLabels is checked in order; the first keyword found in the
// lower-cased primary category name wins.
var cuisineLabels = []struct{ keyword, label string }{
	{"sushi", "Sushi"},
	{"japanese", "Japanese"},
	{"ramen", "Ramen"},
	{"tea", "Tea House"},
	{"café", "Café"},
	{"coffee", "Café"},
	{"bubble tea", "Bubble Tea"},
	{"asian", "Asian Fusion"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// lookupFloat: number at path (float64/int/numeric string).
func lookupFloat(m map[string]any, path string) *float64 {
	switch v := lookupAny(m, path).(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}

/********** venue mapper **********/

func mapVenues(in []map[string]any) []domain.Venue {
	out := make([]domain.Venue, 0, len(in))
	for _, v := range in {
		out = append(out, mapVenue(v))
	}
	return out
}

func mapVenue(v map[string]any) domain.Venue {
	return domain.Venue{
		ID:           lookupStr(v, "id"),
		Name:         lookupStr(v, "name"),
		Address:      formatAddress(v),
		Neighborhood: lookupStr(v, "location.neighborhood"),
		Cuisine:      cuisineFor(v),
		Rating:       rating(v),
		Distance:     distanceMiles(v),
		Price:        priceTier(v),
		Photo:        nil, // v2 search carries no photos
		Hours:        hoursPlaceholder,
	}
}

func formatAddress(v map[string]any) string {
	addr := joinNonEmpty(", ",
		lookupStr(v, "location.address"),
		lookupStr(v, "location.city"),
		lookupStr(v, "location.state"),
	)
	if addr == "" {
		return noAddress
	}
	return addr
}

func cuisineFor(v map[string]any) string {
	cats, _ := v["categories"].([]any)
	if len(cats) == 0 {
		return defaultCuisine
	}
	primary := defaultCuisine
	if c, ok := cats[0].(map[string]any); ok {
		if name, ok := c["name"].(string); ok {
			primary = name
		}
	}
	low := strings.ToLower(primary)
	for _, cl := range cuisineLabels {
		if strings.Contains(low, cl.keyword) {
			return cl.label
		}
	}
	return primary
}

// rating converts the 10-point upstream score to 5 stars.
func rating(v map[string]any) float64 {
	if r := lookupFloat(v, "rating"); r != nil && *r != 0 {
		return *r / 2
	}
	return 0
}

func distanceMiles(v map[string]any) float64 {
	d := lookupFloat(v, "location.distance")
	if d == nil {
		return 0
	}
	return math.Round(*d/metersPerMile*10) / 10
}

func priceTier(v map[string]any) int {
	p, ok := v["price"].(map[string]any)
	if !ok || len(p) == 0 {
		return defaultPrice
	}
	if t := lookupFloat(p, "tier"); t != nil {
		return int(*t)
	}
	return defaultPrice
}
