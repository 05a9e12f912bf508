package domain

// FoodItem is a catalog entry returned by the vector backend. The gateway
// never constructs or mutates these; it only receives and re-shapes them.
type FoodItem struct {
	Name        string
	Description string
	Price       float64
	Calories    int
	// Image is the canonical encoded form: base64 of a fixed-size JPEG.
	Image string

	// Distance is the backend dissimilarity score, lower = closer.
	Distance float64
	// Certainty is the backend similarity score in [0,1], higher = closer.
	Certainty float64
}

// SearchResult is a ranked result sequence, ordered by descending certainty
// as produced by the backend. The gateway preserves this order end to end.
type SearchResult []FoodItem
