package domain

type Venue struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	Cuisine      string  `json:"cuisine"`
	Rating       float64 `json:"rating"`   // 5-star scale
	Distance     float64 `json:"distance"` // miles
	Price        int     `json:"price"`    // tier 1-4
	Photo        *string `json:"photo"`
	Hours        string  `json:"hours"`
}

// Area is a named search location, e.g. a neighborhood preset.
type Area struct {
	Slug   string
	Name   string
	Lat    float64
	Lon    float64
	Radius int // meters
}
