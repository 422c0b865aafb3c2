package builtins

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/pkg/guard"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/store"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Builtin struct {
	guard   *guard.Guard
	handler Handler
}

// Deps are the collaborators the builtin handlers use.
type Deps struct {
	Auth   store.Authstore
	Rooms  store.Roomstore
	Token  store.Tokenstore
	Health Pinger
}

// New initializes and returns a new Builtin instance
func New(logger *slog.Logger, g *guard.Guard, deps Deps) *Builtin {
	return &Builtin{
		guard:   g,
		handler: *newHandler(logutil.OrDiscard(logger), g, deps),
	}
}

var (
	staffOnly = guard.RestrictedPolicy(models.RoleSet(models.RoleAdmin, models.RoleWarden))
	anyRole   = guard.RestrictedPolicy(models.NoConstraint())
)

// LoadAllPolicies declares the access rule of every builtin route. The view
// routes follow the guard's configured paths.
//
// Each landing gets an exact policy, which outranks the prefix policy of
// any section it is placed under. The student landing admits any role so
// that a session with an unknown role, which public views send there,
// always has somewhere to render.
func (b *Builtin) LoadAllPolicies() {
	g := b.guard

	g.SetPolicy(g.LoginPath, "GET", guard.PublicPolicy())
	g.SetPolicy("/signup", "GET", guard.PublicPolicy())
	g.SetPolicy("/api/v1/login", "POST", guard.OpenPolicy())
	g.SetPolicy("/api/v1/signup", "POST", guard.OpenPolicy())
	g.SetPolicy("/healthz", "GET", guard.OpenPolicy())

	g.SetPolicy("/admin", "*", staffOnly)
	g.SetPolicy("/api/v1/rooms", "*", staffOnly)

	g.SetPolicy("/logout", "POST", anyRole)
	g.SetPolicy("/api/v1/token/verify", "GET", anyRole)
	g.SetPolicy(g.LandingPath, "GET", anyRole)
	g.SetPolicy(g.StudentLandingPath, "GET", anyRole)
	g.SetPolicy(g.AdminLandingPath, "GET", staffOnly)
}

// LoadAllRoutes loads all default route groups (auth, dashboards, rooms, etc.).
// If any group fails to register its routes, the error(s) will be combined
// and returned as a single error via errors.Join.
func (b *Builtin) LoadAllRoutes() error {
	errs := []error{
		b.LoadDefaultLoginRoute(),
		b.LoadDefaultSignupRoute(),
		b.LoadDefaultDashboardRoutes(),
		b.LoadDefaultAdminRoutes(),
		b.LoadDefaultAPIRoutes(),
	}

	return errors.Join(errs...)
}

// LoadDefaultLoginRoute serves the login page and the logout action. The
// credentials themselves are posted to the JSON login endpoint.
func (b *Builtin) LoadDefaultLoginRoute() error {
	return b.registerRoutes(map[string]http.HandlerFunc{
		"GET " + b.guard.LoginPath: b.handler.handleLoginGet(),
		"POST /logout":             b.handler.handleLogoutPost(),
	})
}

func (b *Builtin) LoadDefaultSignupRoute() error {
	return b.registerRoutes(map[string]http.HandlerFunc{
		"GET /signup": b.handler.handleSignupGet(),
	})
}

// LoadDefaultDashboardRoutes registers the generic and the student landing
// views, plus the health check.
func (b *Builtin) LoadDefaultDashboardRoutes() error {
	return b.registerRoutes(map[string]http.HandlerFunc{
		"GET " + b.guard.LandingPath:        b.handler.handleDashboardGet(),
		"GET " + b.guard.StudentLandingPath: b.handler.handleStudentDashboardGet(),
		"GET /healthz":                      b.handler.handleHealthzGet(),
	})
}

// LoadDefaultAdminRoutes registers the admin landing view and the room table.
func (b *Builtin) LoadDefaultAdminRoutes() error {
	return b.registerRoutes(map[string]http.HandlerFunc{
		"GET " + b.guard.AdminLandingPath: b.handler.handleAdminDashboardGet(),
		"GET /admin/rooms":                b.handler.handleAdminRoomsGet(),
	})
}

func (b *Builtin) LoadDefaultAPIRoutes() error {
	return b.registerRoutes(map[string]http.HandlerFunc{
		"POST /api/v1/login":       b.handler.handleAPILoginPost(),
		"POST /api/v1/signup":      b.handler.handleAPISignupPost(),
		"GET /api/v1/token/verify": b.handler.handleAPITokenVerify(),
		"GET /api/v1/rooms":        b.handler.handleAPIRoomsGet(),
	})
}

// registerRoutes registers a set of HTTP routes with their corresponding handlers.
// It accepts a map where the keys are route patterns (e.g., "GET /login")
// and the values are the associated http.HandlerFunc implementations.
//
// If any calls to guard.Handle fail, all resulting errors are collected
// and returned as a single error using errors.Join. If all registrations succeed,
// the returned error will be nil.
func (b *Builtin) registerRoutes(routes map[string]http.HandlerFunc) error {
	var errs []error
	for pattern, handler := range routes {
		if err := b.guard.Handle(pattern, handler); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
