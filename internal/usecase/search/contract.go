package search

import (
	"context"

	"github.com/forkful/foodsearch/internal/domain"
)

// Backend issues a nearest-neighbor query in the query's target vector
// space. Implementations return results in backend ranking order and an
// empty slice for zero matches.
type Backend interface {
	Query(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error)
}
