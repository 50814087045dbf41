package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pathUUID parses a UUID path parameter, returning EINVALID for anything
// that does not parse.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "handler.path", "Invalid %s", name)
	}
	return id, nil
}

// pagination reads limit and offset query parameters, clamping the limit
// to a sane page size.
func pagination(r *http.Request) (limit, offset int32) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = int32(min(n, maxPageSize))
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = int32(n)
		}
	}
	return limit, offset
}
