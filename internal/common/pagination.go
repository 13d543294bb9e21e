package common

import (
	"errors"
	"fmt"
)

var (
	// ErrPageTooLow is returned for page numbers below 1.
	ErrPageTooLow = errors.New("starting page is 1")
	// ErrNoResults is returned when there are no rows to paginate at all,
	// regardless of the requested page.
	ErrNoResults = errors.New("no results")
)

// PageOutOfRangeError reports a page number past the final page.
type PageOutOfRangeError struct {
	FinalPage int
}

func (e PageOutOfRangeError) Error() string {
	return fmt.Sprintf("final page is %d", e.FinalPage)
}

// Page is the navigation metadata attached to every paginated listing.
type Page struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPage computes the page bounds for a 1-based page over totalCount rows.
// It returns the navigation metadata and the row offset of the first result.
// Listing queries must pair the offset with an explicit stable sort key so
// that pages do not drift between calls.
func NewPage(page, pageSize, totalCount int) (*Page, int, error) {
	if page < 1 {
		return nil, 0, ErrPageTooLow
	}

	if totalCount == 0 {
		return nil, 0, ErrNoResults
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if page > totalPages {
		return nil, 0, PageOutOfRangeError{FinalPage: totalPages}
	}

	p := &Page{
		CurrentPage:     page,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}

	return p, (page - 1) * pageSize, nil
}
