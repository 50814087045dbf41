package admin

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/localplate/localplate/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "admin.path", "Invalid %s", name)
	}
	return id, nil
}

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
