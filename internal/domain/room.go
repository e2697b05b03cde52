package domain

// Room is an immutable room record. The source set is loaded once at startup
// and mirrored into the search index, which serves all subsequent queries.
type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	Guests    int      `json:"guests"`
	Amenities []string `json:"amenities"`
	Available bool     `json:"available"`
}
