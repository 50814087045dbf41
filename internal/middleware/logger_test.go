package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRequestLogger(t *testing.T) {
	t.Run("emits one access line per request", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.New(slog.NewTextHandler(&buf, nil))

		handler := WithRequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			GetLogger(r.Context()).Info("inside handler")
			w.WriteHeader(http.StatusCreated)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/orders", nil))

		out := buf.String()
		assert.Contains(t, out, "inside handler")
		assert.Contains(t, out, "request completed")
		assert.Contains(t, out, "method=POST")
		assert.Contains(t, out, "path=/api/orders")
		assert.Contains(t, out, "status=201")
	})

	t.Run("health probes log at debug", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.New(slog.NewTextHandler(&buf, nil))

		handler := WithRequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotContains(t, buf.String(), "request completed")
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("falls back when the context has none", func(t *testing.T) {
		fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
		assert.Same(t, fallback, GetLogger(context.Background(), fallback))
	})

	t.Run("defaults without a fallback", func(t *testing.T) {
		assert.Same(t, slog.Default(), GetLogger(context.Background()))
	})
}
