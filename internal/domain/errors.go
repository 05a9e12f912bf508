package domain

import "errors"

var (
	// ErrBackendUnavailable signals that the vector backend cannot be reached
	// or failed its readiness check.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrInvalidQuery signals user input rejected before any backend call.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrImageDecode signals malformed image bytes or a malformed stored image.
	ErrImageDecode = errors.New("image decode failed")
	// ErrSearchFailed signals a backend failure during an otherwise-valid query.
	// Distinct from zero matches, which is success with an empty result.
	ErrSearchFailed = errors.New("search failed")
)
