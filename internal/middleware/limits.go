package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize bounds request bodies. Photo uploads are the
	// largest legitimate payload and stay well under this.
	DefaultMaxBodySize int64 = 10 * MB

	// DefaultTimeout bounds request handling end to end.
	DefaultTimeout = 30 * time.Second
)

// MaxBodySize rejects requests whose body exceeds the limit with 413.
// Called without arguments it applies DefaultMaxBodySize.
func MaxBodySize(maxBytes ...int64) func(http.Handler) http.Handler {
	limit := DefaultMaxBodySize
	if len(maxBytes) > 0 {
		limit = maxBytes[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A declared oversize body fails fast; chunked bodies are
			// caught by the reader as they stream in.
			if r.ContentLength > limit {
				respondTooLarge(w, r, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout cancels the request context after the duration and answers
// 503 if the handler has not started writing. Called without arguments
// it applies DefaultTimeout.
func Timeout(timeout ...time.Duration) func(http.Handler) http.Handler {
	limit := DefaultTimeout
	if len(timeout) > 0 {
		limit = timeout[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}
			done := make(chan struct{})
			panicChan := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicChan:
				// Rethrow on the request goroutine so the recovery
				// middleware above this one sees it.
				panic(p)
			case <-done:
			case <-ctx.Done():
				// The handler goroutine keeps running until it notices
				// the cancelled context; its writes are discarded.
				tw.abort()
			}
		})
	}
}

// timeoutWriter serializes writes from the handler goroutine against
// the timeout path. After abort, handler writes are swallowed so the
// 503 response is not interleaved with late output.
type timeoutWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, context.DeadlineExceeded
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}

// abort sends the 503 unless the handler already started responding,
// in which case the client gets whatever was written before the cut.
func (tw *timeoutWriter) abort() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
	if tw.wroteHeader {
		return
	}
	tw.wroteHeader = true

	h := tw.ResponseWriter.Header()
	h.Set("Content-Type", "application/json")
	tw.ResponseWriter.WriteHeader(http.StatusServiceUnavailable)
	json.NewEncoder(tw.ResponseWriter).Encode(map[string]any{
		"error": map[string]string{
			"code":    "internal",
			"message": "Request timed out. Please try again.",
		},
	})
}
