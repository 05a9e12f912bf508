package chi

import (
	"encoding/json"
	"net/http"

	"github.com/forkful/foodsearch/internal/domain"
	healthuc "github.com/forkful/foodsearch/internal/usecase/health"
)

// Error codes returned in error responses.
const (
	codeBadRequest         = "bad_request"
	codeInvalidQuery       = "invalid_query"
	codeImageDecode        = "image_decode_failed"
	codeBackendUnavailable = "backend_unavailable"
	codeUploadTooLarge     = "upload_too_large"
	codeSearchFailed       = "search_failed"
	codeInternal           = "internal_error"
)

// errorStatuses maps domain sentinels to HTTP statuses, checked in order.
var errorStatuses = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery},
	{domain.ErrImageDecode, http.StatusUnprocessableEntity, codeImageDecode},
	{domain.ErrBackendUnavailable, http.StatusServiceUnavailable, codeBackendUnavailable},
	{domain.ErrSearchFailed, http.StatusBadGateway, codeSearchFailed},
}

type textSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type foodItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Calories    int     `json:"calories"`
	Image       string  `json:"image,omitempty"`
	Distance    float64 `json:"distance"`
	Certainty   float64 `json:"certainty"`
	// MatchPercent is certainty scaled to 0..100 for display.
	MatchPercent float64 `json:"match_percent"`
}

type searchResponse struct {
	Total int `json:"total"`
	// Top holds the featured band; Others holds the remaining results in
	// presentation rows. An empty Top with no Others means zero matches.
	Top            []foodItem   `json:"top"`
	Others         [][]foodItem `json:"others,omitempty"`
	OversizedImage bool         `json:"oversized_image,omitempty"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func itemsToDTO(items domain.SearchResult) []foodItem {
	out := make([]foodItem, len(items))
	for i, item := range items {
		out[i] = foodItem{
			Name:         item.Name,
			Description:  item.Description,
			Price:        item.Price,
			Calories:     item.Calories,
			Image:        item.Image,
			Distance:     item.Distance,
			Certainty:    item.Certainty,
			MatchPercent: item.Certainty * 100,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
