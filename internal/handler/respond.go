package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/localplate/localplate/internal/domain"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Decode reads the request body into v. Malformed or empty bodies come
// back as EINVALID so handlers can pass the error straight to
// ErrorResponse.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return domain.Errorf(domain.EINVALID, "handler.decode", "Request body is required")
		case errors.As(err, new(*http.MaxBytesError)):
			return domain.Errorf(domain.ETOOLARGE, "handler.decode", "Request body is too large")
		default:
			return domain.Errorf(domain.EINVALID, "handler.decode", "Request body is not valid JSON")
		}
	}
	return nil
}
