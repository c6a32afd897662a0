package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params are validated limit/offset values.
type Params struct {
	Limit  int
	Offset int
}

// ParseQueryParams reads "limit" and "offset" from the query string.
// Missing values take the config defaults; out of range values are errors.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Limit: config.DefaultLimit}
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}
	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			return params, fmt.Errorf("invalid query parameter: offset must be a non-negative integer")
		}
		params.Offset = offset
	}
	return params, nil
}

// Metadata is included in paged API responses.
type Metadata struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// NewMetadata derives HasMore from total and the page that was served.
func NewMetadata(p Params, total int64) Metadata {
	return Metadata{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: int64(p.Offset+p.Limit) < total,
	}
}

// Response is a generic paginated response wrapper.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Pagination: metadata}
}
