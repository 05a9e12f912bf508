package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/domain"
	"github.com/forkful/foodsearch/internal/metrics"
)

// Service validates similarity queries and dispatches them to the vector
// backend. It never re-ranks, filters, or deduplicates results.
type Service struct {
	backend Backend
	logger  *zap.Logger
}

// New creates a search service.
func New(backend Backend, logger *zap.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Search runs a similarity search. Invalid input is rejected before any
// backend call. Backend unavailability propagates unchanged; every other
// backend failure becomes ErrSearchFailed with its cause. Zero matches are
// success: an explicitly-empty result, never nil, never an error.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	modality := string(q.Modality())

	if err := q.Validate(); err != nil {
		metrics.SearchesTotal.WithLabelValues(modality, "invalid").Inc()
		return nil, err
	}

	start := time.Now()
	items, err := s.backend.Query(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrBackendUnavailable) {
			metrics.SearchesTotal.WithLabelValues(modality, "unavailable").Inc()
			return nil, err
		}
		metrics.SearchesTotal.WithLabelValues(modality, "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}

	metrics.SearchDuration.WithLabelValues(modality).Observe(time.Since(start).Seconds())
	metrics.SearchesTotal.WithLabelValues(modality, "ok").Inc()

	if items == nil {
		items = domain.SearchResult{}
	}

	s.logger.Debug("search done",
		zap.String("modality", modality),
		zap.Int("limit", q.Limit()),
		zap.Int("matches", len(items)),
	)
	return items, nil
}
