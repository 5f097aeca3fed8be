package shared

import "truffle_shuffle/internal/domain"

// Areas are the Bay Area presets offered by the frontend; the warmer fills these.
var Areas = []domain.Area{
	{Slug: "all", Name: "All Bay Area", Lat: 37.7749, Lon: -122.4194, Radius: 25000},
	{Slug: "mission", Name: "Mission District", Lat: 37.7599, Lon: -122.4148, Radius: 3000},
	{Slug: "soma", Name: "SoMa", Lat: 37.7749, Lon: -122.4194, Radius: 3000},
	{Slug: "hayes", Name: "Hayes Valley", Lat: 37.7749, Lon: -122.4256, Radius: 2000},
	{Slug: "japantown", Name: "Japantown", Lat: 37.7853, Lon: -122.4306, Radius: 2000},
	{Slug: "oakland", Name: "Oakland", Lat: 37.8044, Lon: -122.2712, Radius: 5000},
	{Slug: "berkeley", Name: "Berkeley", Lat: 37.8715, Lon: -122.2730, Radius: 5000},
	{Slug: "paloalto", Name: "Palo Alto", Lat: 37.4419, Lon: -122.1430, Radius: 5000},
	{Slug: "sanmateo", Name: "San Mateo", Lat: 37.5630, Lon: -122.3255, Radius: 5000},
	{Slug: "cupertino", Name: "Cupertino", Lat: 37.3230, Lon: -122.0322, Radius: 5000},
	{Slug: "sunnyvale", Name: "Sunnyvale", Lat: 37.3688, Lon: -122.0363, Radius: 5000},
	{Slug: "santaclara", Name: "Santa Clara", Lat: 37.3541, Lon: -121.9552, Radius: 5000},
}

// AreasBySlug filters Areas; unknown slugs are returned separately.
func AreasBySlug(slugs []string) (found []domain.Area, unknown []string) {
	if len(slugs) == 0 {
		return Areas, nil
	}
	idx := make(map[string]domain.Area, len(Areas))
	for _, a := range Areas {
		idx[a.Slug] = a
	}
	for _, s := range slugs {
		if a, ok := idx[s]; ok {
			found = append(found, a)
			continue
		}
		unknown = append(unknown, s)
	}
	return found, unknown
}
