package guard

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/session"
)

// Guard decides, for every navigation, whether the requested view renders
// or the client is sent elsewhere. It evaluates the session in one of two
// modes: Restricted for authenticated-only views and Public for the login
// and signup views. Routes registered through Handle are wrapped with the
// mode their policy asks for.
type Guard struct {
	log      *slog.Logger
	Policies map[string]map[string]Policy       // path -> method -> policy
	handlers map[string]map[string]http.Handler // path -> method -> handler internal mapping
	router   Router                             // used for registering dispatchers
	Config
	cookieKey []byte       // signs the session cookies
	mu        sync.RWMutex // protects Policies and handlers
}

// Config holds the view paths the guard redirects to and the attributes
// of the session cookies it reads and clears.
type Config struct {
	LoginPath          string        // where unauthenticated sessions are sent
	LandingPath        string        // generic authenticated landing, for insufficient roles
	AdminLandingPath   string        // landing for admin and warden
	StudentLandingPath string        // landing for every other role
	CookiePath         string        // path attribute of the session cookies
	CookieSecure       bool          // recommended always to be true in production environments
	CookieMaxAge       time.Duration // zero keeps session cookies until the browser closes
	CookieSecret       string        // signs session cookies, empty selects a random key per Guard
}

// newDefaultConfig returns a pointer to Config with the default options
func newDefaultConfig() *Config {
	return &Config{
		LoginPath:          "/login",
		LandingPath:        "/dashboard",
		AdminLandingPath:   "/admin/dashboard",
		StudentLandingPath: "/student/dashboard",
		CookiePath:         "/",
		CookieSecure:       true,
	}
}

// DefaultConfig returns the configuration used when New is given nil.
func DefaultConfig() Config {
	return *newDefaultConfig()
}

// withDefaults fills every empty path with its default.
func (c Config) withDefaults() Config {
	d := newDefaultConfig()
	if c.LoginPath == "" {
		c.LoginPath = d.LoginPath
	}
	if c.LandingPath == "" {
		c.LandingPath = d.LandingPath
	}
	if c.AdminLandingPath == "" {
		c.AdminLandingPath = d.AdminLandingPath
	}
	if c.StudentLandingPath == "" {
		c.StudentLandingPath = d.StudentLandingPath
	}
	if c.CookiePath == "" {
		c.CookiePath = d.CookiePath
	}
	return c
}

// New initializes and returns a Guard.
//
// Params:
//   - logger: structured logger, nil discards output
//   - router: where dispatching handlers are registered, may be nil when only
//     Restricted, Public or the middlewares are used
//   - config: view paths and cookie attributes, nil selects the defaults
//
// Example:
//
//	g := guard.New(logger, mux, nil)
//	g.SetPolicy("/admin", "*", guard.RestrictedPolicy(models.RoleSet(models.RoleAdmin, models.RoleWarden)))
func New(logger *slog.Logger, router Router, config *Config) *Guard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if config == nil {
		config = newDefaultConfig()
	}

	return &Guard{
		log:       logger,
		Policies:  make(map[string]map[string]Policy),
		handlers:  make(map[string]map[string]http.Handler),
		router:    router,
		Config:    config.withDefaults(),
		cookieKey: config.cookieKey(),
	}
}

func (c Config) cookieKey() []byte {
	if c.CookieSecret != "" {
		return []byte(c.CookieSecret)
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

// View names a navigation target.
type View int

const (
	ViewNone           View = iota // render the requested content
	ViewLogin                      // unauthenticated
	ViewLanding                    // authenticated but insufficiently privileged
	ViewAdminLanding               // authenticated staff on a public view
	ViewStudentLanding             // any other authenticated role on a public view
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewLanding:
		return "landing"
	case ViewAdminLanding:
		return "admin_landing"
	case ViewStudentLanding:
		return "student_landing"
	default:
		return "render"
	}
}

// Decision is the outcome of one evaluation.
type Decision struct {
	View    View
	Target  string         // redirect location, empty when rendering
	Profile models.Profile // profile of an authenticated session
	Cleared bool           // corrupt session data was removed
}

// Renders reports whether the requested content should be rendered.
func (d Decision) Renders() bool {
	return d.View == ViewNone
}

func (g *Guard) redirect(v View, target string) Decision {
	return Decision{View: v, Target: target}
}

// Restricted evaluates an authenticated-only view.
//
// Without a valid session it redirects to login, clearing the session first
// when its user record is corrupt. A valid session whose effective role the
// constraint does not allow is redirected to the generic landing view.
// Everything else renders.
func (g *Guard) Restricted(sess *session.Context, c models.Constraint) Decision {
	state := sess.Load()

	switch state.Kind {
	case session.Corrupt:
		sess.Clear()
		g.log.Debug("cleared corrupt session on restricted view", "err", state.Err)
		d := g.redirect(ViewLogin, g.LoginPath)
		d.Cleared = true
		return d

	case session.Unauthenticated:
		g.log.Debug("no session on restricted view", "redirect", g.LoginPath)
		return g.redirect(ViewLogin, g.LoginPath)
	}

	g.logDefaultedRole(state.Profile)

	role := state.Role()
	if !c.Allows(role) {
		g.log.Debug("role not allowed on restricted view",
			"role", role,
			"constraint", c.String(),
			"redirect", g.LandingPath)
		d := g.redirect(ViewLanding, g.LandingPath)
		d.Profile = state.Profile
		return d
	}

	return Decision{View: ViewNone, Profile: state.Profile}
}

// Public evaluates a view meant for signed-out visitors such as login.
//
// A valid session is sent to its role's landing view. Corrupt session data
// is cleared and the view renders, as it does when there is no session.
func (g *Guard) Public(sess *session.Context) Decision {
	state := sess.Load()

	switch state.Kind {
	case session.Corrupt:
		sess.Clear()
		g.log.Debug("cleared corrupt session on public view", "err", state.Err)
		return Decision{View: ViewNone, Cleared: true}

	case session.Unauthenticated:
		return Decision{View: ViewNone}
	}

	g.logDefaultedRole(state.Profile)

	view, target := g.landingFor(state.Role())
	g.log.Debug("authenticated session on public view", "role", state.Role(), "redirect", target)
	d := g.redirect(view, target)
	d.Profile = state.Profile
	return d
}

// LandingFor returns the landing path for a role.
func (g *Guard) LandingFor(role models.Role) string {
	_, target := g.landingFor(role)
	return target
}

func (g *Guard) landingFor(role models.Role) (View, string) {
	if role.IsStaff() {
		return ViewAdminLanding, g.AdminLandingPath
	}
	return ViewStudentLanding, g.StudentLandingPath
}

// An absent role is treated as student. Logged so missing role data stays visible.
func (g *Guard) logDefaultedRole(p models.Profile) {
	if p.Role == "" {
		g.log.Debug("session profile has no role, assuming default", "default_role", models.DefaultRole, "user_id", p.ID)
	}
}
