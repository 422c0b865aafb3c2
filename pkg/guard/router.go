package guard

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Lalith0024/unistay/internal/logutil"
)

// Router defines an abstraction for registering routes.
// It allows Guard to remain decoupled from specific HTTP frameworks.
type Router interface {
	Handle(pattern string, handler http.Handler)
}

var errNilHandler = errors.New("cannot register nil handler for route")
var errNoRouter = errors.New("guard has no router to register on")

// Handle registers an HTTP handler for the given route pattern.
// The route string can be either:
//
//	"/path"          // matches all HTTP methods for /path
//	"METHOD /path"   // matches only HTTP requests with METHOD (GET, POST, etc.)
//
// One dispatcher per path is registered on the router. On every request it
// picks the exact method handler, then the all-methods handler, and wraps
// the pick with the middleware of the policy in force at request time, so
// policies may be set before or after Handle. Registering the same method
// and path twice returns a DuplicatePathAndMethodError.
func (g *Guard) Handle(route string, handler http.Handler) error {
	g.log.Debug("guard handling route", "route", route)
	if handler == nil {
		return logutil.LogAndWrapErr(g.log, "unable to register route", errNilHandler, "route", route)
	}

	method, path := parseRoute(route)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.handlers == nil {
		g.handlers = make(map[string]map[string]http.Handler)
	}

	if _, exists := g.handlers[path]; !exists {
		if g.router == nil {
			return logutil.LogAndWrapErr(g.log, "unable to register route", errNoRouter, "route", route)
		}
		g.handlers[path] = make(map[string]http.Handler)
		g.router.Handle(path, g.dispatcher(path))
	}

	if _, exists := g.handlers[path][method]; exists {
		return logutil.LogAndWrapErr(g.log, "attempted to add duplicate path to guard",
			NewDuplicatePathAndMethodError(path, method))
	}

	g.handlers[path][method] = handler
	return nil
}

// HandleFunc is a convenience wrapper around Handle that accepts
// an http.HandlerFunc instead of a full http.Handler.
func (g *Guard) HandleFunc(route string, handlerFunc http.HandlerFunc) error {
	if handlerFunc == nil {
		return g.Handle(route, nil)
	}
	return g.Handle(route, handlerFunc)
}

func (g *Guard) dispatcher(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer logutil.NewTimingLogger(g.log, time.Now(), "access handled", "method", r.Method, "path", r.URL.Path, "remote_ip", r.RemoteAddr, "user_agent", r.UserAgent())()

		h, ok := g.lookup(path, r.Method)
		if !ok {
			g.respondMethodNotAllowed(w, r)
			return
		}
		g.WrapHandler(path, r.Method, h).ServeHTTP(w, r)
	})
}

// lookup tries the exact method first, then the handler registered without a method.
func (g *Guard) lookup(path, method string) (http.Handler, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	methodHandlers := g.handlers[path]
	if h, ok := methodHandlers[method]; ok {
		return h, true
	}
	if h, ok := methodHandlers[""]; ok {
		return h, true
	}
	return nil, false
}

// parseRoute parses a route string into method and path components.
// Valid formats are:
//
//	"METHOD /path"   e.g. "GET /admin"
//	"/path"          e.g. "/admin"
//
// If the method is omitted, the returned method string is empty,
// meaning the route applies to all HTTP methods.
func parseRoute(route string) (method, path string) {
	parts := strings.Fields(route)
	switch len(parts) {
	case 0:
		return "", "/"
	case 1:
		if strings.HasPrefix(parts[0], "/") {
			return "", strings.ToLower(parts[0])
		}
		// method but no path
		return "", "/"
	default:
		return strings.ToUpper(parts[0]), strings.ToLower(parts[1])
	}
}

var ErrDuplicatePathAndMethod = &DuplicatePathAndMethodError{}

type DuplicatePathAndMethodError struct {
	Method string
	Path   string
}

func NewDuplicatePathAndMethodError(path, method string) *DuplicatePathAndMethodError {
	return &DuplicatePathAndMethodError{
		Method: method,
		Path:   path,
	}
}

func (e *DuplicatePathAndMethodError) Error() string {
	return fmt.Sprintf("guard: duplicate path: %s and method: %s attempted", e.Path, e.Method)
}

func (e *DuplicatePathAndMethodError) Is(target error) bool {
	_, ok := target.(*DuplicatePathAndMethodError)
	return ok
}
