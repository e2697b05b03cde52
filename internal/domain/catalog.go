package domain

import "sort"

// Catalog summarizes the room inventory. It grounds the extraction prompt in
// real data so the model only proposes cities, prices, and amenities that the
// index can actually match.
type Catalog struct {
	Cities    []string
	MinPrice  float64
	MaxPrice  float64
	MaxGuests int
	Amenities []string
}

// BuildCatalog derives a Catalog from the room set. Cities and amenities are
// deduplicated and sorted so the prompt is stable across restarts.
func BuildCatalog(rooms []Room) Catalog {
	cities := map[string]struct{}{}
	amenities := map[string]struct{}{}
	c := Catalog{}

	for i, r := range rooms {
		cities[r.Location] = struct{}{}
		for _, a := range r.Amenities {
			amenities[a] = struct{}{}
		}
		if i == 0 || r.Price < c.MinPrice {
			c.MinPrice = r.Price
		}
		if r.Price > c.MaxPrice {
			c.MaxPrice = r.Price
		}
		if r.Guests > c.MaxGuests {
			c.MaxGuests = r.Guests
		}
	}

	c.Cities = sortedKeys(cities)
	c.Amenities = sortedKeys(amenities)
	return c
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
