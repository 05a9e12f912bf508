// Package chi exposes the search gateway over HTTP. All presentation
// decisions (what to render for empty vs. error states) belong to the
// caller; this layer only maps gateway outcomes to statuses and JSON.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/forkful/foodsearch/internal/domain"
	"github.com/forkful/foodsearch/internal/imaging"
	logpkg "github.com/forkful/foodsearch/internal/logger"
	healthuc "github.com/forkful/foodsearch/internal/usecase/health"
	searchuc "github.com/forkful/foodsearch/internal/usecase/search"
)

// Options holds result-shaping and upload limits for the HTTP layer.
type Options struct {
	TopResults     int
	RowSize        int
	DefaultLimit   int
	MaxLimit       int
	MaxUploadBytes int64
}

// Server handles the gateway's HTTP API. Request-scoped logging comes from
// the logger stored in the request context by the logging middleware.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	codec  *imaging.Codec
	opts   Options
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	codec *imaging.Codec,
	opts Options,
) *Server {
	if opts.TopResults <= 0 {
		opts.TopResults = 3
	}
	if opts.RowSize <= 0 {
		opts.RowSize = 3
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = domain.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Server{search: search, health: health, codec: codec, opts: opts}
}

// Routes mounts all gateway endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search/text", s.SearchText)
	r.Post("/v1/search/image", s.SearchImage)
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// SearchText handles POST /v1/search/text.
func (s *Server) SearchText(w http.ResponseWriter, r *http.Request) {
	var req textSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q := domain.NewTextQuery(req.Query, s.clampLimit(req.Limit))

	items, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.bands(items, false))
}

// SearchImage handles POST /v1/search/image (multipart upload, field "image",
// optional form value "limit").
func (s *Server) SearchImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid multipart body: "+err.Error())
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	limit := 0
	if v := r.FormValue("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
	}

	// Read one byte past the limit so over-limit uploads are distinguishable
	// from exactly-at-limit ones.
	raw, err := io.ReadAll(io.LimitReader(file, s.opts.MaxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "failed to read upload: "+err.Error())
		return
	}
	if int64(len(raw)) > s.opts.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, codeUploadTooLarge,
			"image exceeds the upload size limit")
		return
	}

	canonical, err := s.codec.NormalizeForQuery(raw)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}
	if canonical.Oversized {
		logpkg.FromContext(r.Context()).Warn("oversized upload accepted",
			zap.Int("payload_bytes", len(raw)))
	}

	q := domain.NewImageQuery(canonical.Base64, s.clampLimit(limit))

	items, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.bands(items, canonical.Oversized))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// clampLimit fills an omitted limit with the configured default and caps the
// result at the configured maximum.
func (s *Server) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		return s.opts.MaxLimit
	}
	return limit
}

// bands shapes a ranked result list into the tiered presentation split.
func (s *Server) bands(items domain.SearchResult, oversized bool) searchResponse {
	split := searchuc.Partition(items, s.opts.TopResults, s.opts.RowSize)

	resp := searchResponse{
		Total:          len(items),
		Top:            itemsToDTO(split.Top),
		OversizedImage: oversized,
	}
	for _, row := range split.Rows {
		resp.Others = append(resp.Others, itemsToDTO(row))
	}
	return resp
}

func (s *Server) handleSearchError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range errorStatuses {
		if errors.Is(err, h.sentinel) {
			writeError(w, h.status, h.code, err.Error())
			return
		}
	}

	logpkg.FromContext(r.Context()).Error("unhandled search error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
