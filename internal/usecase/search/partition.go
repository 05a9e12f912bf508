package search

import "github.com/forkful/foodsearch/internal/domain"

// Bands is the presentation split of a ranked result list: a featured top
// band followed by fixed-size rows.
type Bands struct {
	Top  domain.SearchResult
	Rows []domain.SearchResult
}

// Partition splits ranked results into a top band of at most topN items and
// trailing rows of rowSize (the last row may be shorter). The input order is
// preserved exactly; concatenating Top with the flattened Rows reproduces
// the input. Empty input yields an empty Top and no Rows.
func Partition(results domain.SearchResult, topN, rowSize int) Bands {
	if topN < 0 {
		topN = 0
	}
	if rowSize <= 0 {
		rowSize = 3
	}
	if topN > len(results) {
		topN = len(results)
	}

	bands := Bands{Top: results[:topN:topN]}

	rest := results[topN:]
	for start := 0; start < len(rest); start += rowSize {
		end := start + rowSize
		if end > len(rest) {
			end = len(rest)
		}
		bands.Rows = append(bands.Rows, rest[start:end:end])
	}
	return bands
}
