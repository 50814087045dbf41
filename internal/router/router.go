// Package router wraps http.ServeMux with middleware chaining and
// method-scoped route registration.
package router

import (
	"io/fs"
	"net/http"
	"slices"
	"strings"
)

// Router is an http.ServeMux with a middleware chain attached. Routes
// registered through it inherit the chain plus any route-specific
// middleware.
type Router struct {
	mux   *http.ServeMux
	chain []Middleware
}

// Middleware wraps a handler with more behavior.
type Middleware func(http.Handler) http.Handler

// New builds a Router whose chain runs on every registered route.
func New(middleware ...Middleware) *Router {
	return &Router{
		mux:   http.NewServeMux(),
		chain: middleware,
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Get registers pattern for GET requests.
func (r *Router) Get(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodGet, pattern, handler, middleware...)
}

// Post registers pattern for POST requests.
func (r *Router) Post(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPost, pattern, handler, middleware...)
}

// Put registers pattern for PUT requests.
func (r *Router) Put(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPut, pattern, handler, middleware...)
}

// Delete registers pattern for DELETE requests.
func (r *Router) Delete(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodDelete, pattern, handler, middleware...)
}

// Patch registers pattern for PATCH requests.
func (r *Router) Patch(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.Handle(http.MethodPatch, pattern, handler, middleware...)
}

// Handle registers pattern under an explicit method, using Go 1.22
// method-qualified ServeMux patterns.
func (r *Router) Handle(method, pattern string, handler http.Handler, middleware ...Middleware) {
	r.mux.Handle(method+" "+pattern, r.wrap(handler, middleware))
}

// NotFound registers a fallback handler for requests no route matches.
// The global middleware chain still applies, so unmatched requests get
// the same logging and headers as real routes.
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.Handle("/", r.wrap(handler, nil))
}

// wrap layers the global chain plus route middleware around handler.
// Wrapping runs back to front so middleware executes in the order it
// was declared.
func (r *Router) wrap(handler http.Handler, middleware []Middleware) http.Handler {
	combined := append(slices.Clone(r.chain), middleware...)
	for i := len(combined) - 1; i >= 0; i-- {
		handler = combined[i](handler)
	}
	return handler
}

// Group derives a Router sharing the same mux with middleware appended
// to the chain. Registration order across groups does not matter; the
// mux routes by pattern.
func (r *Router) Group(middleware ...Middleware) *Router {
	return &Router{
		mux:   r.mux,
		chain: append(slices.Clone(r.chain), middleware...),
	}
}

// Static serves files from a directory under the given route prefix.
// Directory paths answer 404 rather than a listing, so stored photo
// keys cannot be enumerated.
func (r *Router) Static(prefix, dir string) {
	fileServer := http.FileServer(noListingDir{http.Dir(dir)})

	cleanPrefix := strings.TrimSuffix(prefix, "/")
	handler := http.StripPrefix(cleanPrefix, fileServer)

	r.mux.Handle("GET "+cleanPrefix+"/{file...}", r.wrap(handler, nil))
}

// noListingDir hides directories from http.FileServer.
type noListingDir struct {
	http.Dir
}

func (d noListingDir) Open(name string) (http.File, error) {
	f, err := d.Dir.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
