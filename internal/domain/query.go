package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Modality identifies the input kind of a search query.
type Modality string

const (
	// ModalityText is a phrase typed by the user.
	ModalityText Modality = "text"
	// ModalityImage is an uploaded photo in canonical encoded form.
	ModalityImage Modality = "image"
)

const (
	// TextVector is the embedding space for text queries.
	TextVector = "text_vector"
	// ImageVector is the embedding space for image queries.
	ImageVector = "image_vector"

	// DefaultLimit is the result count requested when none is given.
	DefaultLimit = 10
	// MinTextLength is the minimum trimmed query length in characters.
	MinTextLength = 2
)

// SearchQuery is a tagged union over the two query modalities. The modality
// fixes the target embedding space; text and image spaces are not comparable,
// so a query is never matched against the other space.
type SearchQuery struct {
	modality Modality
	text     string
	image    string
	limit    int
}

// NewTextQuery builds a text query. The phrase is trimmed on construction.
func NewTextQuery(text string, limit int) SearchQuery {
	return SearchQuery{
		modality: ModalityText,
		text:     strings.TrimSpace(text),
		limit:    normalizeLimit(limit),
	}
}

// NewImageQuery builds an image query from a canonical encoded image.
func NewImageQuery(encoded string, limit int) SearchQuery {
	return SearchQuery{
		modality: ModalityImage,
		image:    encoded,
		limit:    normalizeLimit(limit),
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Modality returns the query kind.
func (q SearchQuery) Modality() Modality { return q.modality }

// Text returns the trimmed phrase of a text query.
func (q SearchQuery) Text() string { return q.text }

// Image returns the canonical encoded payload of an image query.
func (q SearchQuery) Image() string { return q.image }

// Limit returns the requested result count.
func (q SearchQuery) Limit() int { return q.limit }

// TargetVector returns the embedding space this query must be matched
// against. The mapping is total and modality-exclusive.
func (q SearchQuery) TargetVector() string {
	switch q.modality {
	case ModalityImage:
		return ImageVector
	default:
		return TextVector
	}
}

// Validate rejects queries that must not reach the backend.
func (q SearchQuery) Validate() error {
	switch q.modality {
	case ModalityText:
		if utf8.RuneCountInString(q.text) < MinTextLength {
			return fmt.Errorf("%w: query must be at least %d characters", ErrInvalidQuery, MinTextLength)
		}
	case ModalityImage:
		if q.image == "" {
			return fmt.Errorf("%w: image payload is empty", ErrInvalidQuery)
		}
	default:
		return fmt.Errorf("%w: unknown modality %q", ErrInvalidQuery, q.modality)
	}
	return nil
}
