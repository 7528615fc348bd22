package query

import (
	caterrors "github.com/rlagos/catalog-api/internal/catalog/errors"
)

// Default pagination parameters applied when a request omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// Page is a single window over an ordered sequence, together with the
// arithmetic needed to render pagination metadata. NextPage and PrevPage
// are nil when there is no such page.
type Page[T any] struct {
	Items       []T
	TotalItems  int
	TotalPages  int
	CurrentPage int
	NextPage    *int
	PrevPage    *int
}

// Paginate slices items into the requested page. The window is
// [(page-1)*limit, page*limit), clipped to the sequence length; an
// out-of-range page yields an empty item list, not an error.
// Returns ErrInvalidPagination when page or limit is not positive.
func Paginate[T any](items []T, page, limit int) (*Page[T], error) {
	if page < 1 || limit < 1 {
		return nil, caterrors.ErrInvalidPagination
	}

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// The out-of-range check must come before the window arithmetic:
	// (page-1)*limit overflows for huge page values.
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * limit
		end = min(start+limit, total)
	}

	result := &Page[T]{
		Items:       items[start:end],
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
	if page < totalPages {
		next := page + 1
		result.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		result.PrevPage = &prev
	}
	return result, nil
}
