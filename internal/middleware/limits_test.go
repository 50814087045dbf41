package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxBodySize(t *testing.T) {
	t.Run("rejects a declared oversize body", func(t *testing.T) {
		handler := MaxBodySize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run")
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "too_large")
	})

	t.Run("caps a streamed body", func(t *testing.T) {
		var readErr error
		handler := MaxBodySize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))

		// No Content-Length set on the request, so only the reader can
		// catch it.
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(strings.Repeat("x", 64)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Error(t, readErr)
	})

	t.Run("passes a small body through", func(t *testing.T) {
		handler := MaxBodySize(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(body))
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("hello"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTimeout(t *testing.T) {
	t.Run("fast handler responds normally", func(t *testing.T) {
		handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, "done")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offerings", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "done", w.Body.String())
	})

	t.Run("slow handler gets 503 and its late write is discarded", func(t *testing.T) {
		finished := make(chan struct{})
		handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer close(finished)
			time.Sleep(100 * time.Millisecond)
			io.WriteString(w, "late output")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offerings", nil))

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("handler never observed the cancelled context")
		}

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "timed out")
		assert.NotContains(t, w.Body.String(), "late output")
	})

	t.Run("handler panic reaches the caller", func(t *testing.T) {
		handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("offering lookup blew up")
		}))

		defer func() {
			require.Equal(t, "offering lookup blew up", recover())
		}()
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/offerings", nil))
	})

	t.Run("started response is left alone", func(t *testing.T) {
		finished := make(chan struct{})
		handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer close(finished)
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, "partial")
			<-r.Context().Done()
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/offerings", nil))

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("handler never observed the cancelled context")
		}

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}
