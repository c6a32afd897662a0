// Package pathutil extracts identifiers from request paths and normalizes
// paths for use as metric labels.
package pathutil

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// PathUUID parses the named path wildcard of a routed request as a UUID.
// The nil UUID is rejected.
//
// Example:
//
//	// mux.Handle("GET /articles/{id}", h)
//	id, err := PathUUID(r, "id")
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return ParseID(r.PathValue(name))
}

// ParseID parses a UUID string, returning ErrInvalidID on failure.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
