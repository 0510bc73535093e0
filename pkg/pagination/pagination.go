// Package pagination provides page/limit/offset arithmetic for list endpoints.
//
// Parameter validation happens at the boundary via ParseQuery; Paginate itself
// assumes already-validated inputs. An out-of-range page is not an error: the
// resulting offset lies beyond the data and the storage query returns an empty
// slice naturally.
package pagination

import (
	"net/url"
	"strconv"

	dErrors "consentd/pkg/domain-errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// Params carries validated pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Default returns the parameters used when a request omits page and limit.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// ParseQuery extracts and validates page/limit query parameters.
// Missing values fall back to defaults; malformed or out-of-range values are
// rejected as invalid arguments before any store round trip.
func ParseQuery(values url.Values) (Params, error) {
	p := Default()

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, dErrors.New(dErrors.CodeInvalidArgument, "page must be an integer")
		}
		if page < 1 {
			return Params{}, dErrors.New(dErrors.CodeInvalidArgument, "page must be >= 1")
		}
		p.Page = page
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, dErrors.New(dErrors.CodeInvalidArgument, "limit must be an integer")
		}
		if limit < 1 || limit > MaxLimit {
			return Params{}, dErrors.New(dErrors.CodeInvalidArgument, "limit must be between 1 and 100")
		}
		p.Limit = limit
	}

	return p, nil
}

// Result describes one page of a collection.
type Result struct {
	TotalCount int
	TotalPages int
	Page       int
	Limit      int
	Offset     int
}

// Paginate computes the page arithmetic for a collection of totalCount items.
// TotalPages is zero when the collection is empty.
func Paginate(totalCount int, p Params) Result {
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + p.Limit - 1) / p.Limit
	}
	return Result{
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       p.Page,
		Limit:      p.Limit,
		Offset:     (p.Page - 1) * p.Limit,
	}
}
