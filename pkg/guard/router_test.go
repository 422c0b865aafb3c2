package guard

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lalith0024/unistay/pkg/models"
)

// mockRouter is a minimal implementation of Router for testing.
// It records which patterns were handled and keeps the dispatchers.
type mockRouter struct {
	handledPaths []string
	handlers     map[string]http.Handler
}

func (m *mockRouter) Handle(pattern string, handler http.Handler) {
	if m.handlers == nil {
		m.handlers = make(map[string]http.Handler)
	}
	m.handledPaths = append(m.handledPaths, pattern)
	m.handlers[pattern] = handler
}

// serve sends req to the dispatcher registered for its path.
func (m *mockRouter) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	m.handlers[req.URL.Path].ServeHTTP(rec, req)
	return rec
}

// dummyHandler is a simple handler that writes a known value
func dummyHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot) // 418 I'm a teapot
	_, _ = w.Write([]byte("teapot"))
}

func writeBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func createTestGuard() (*Guard, *mockRouter) {
	r := &mockRouter{}
	return New(NoopLogger(), r, nil), r
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMethod string
		wantPath   string
	}{
		{"MethodAndPath", "GET /admin/dashboard", "GET", "/admin/dashboard"},
		{"PathOnly", "/dashboard", "", "/dashboard"},
		{"EmptyString", "", "", "/"},
		{"WhitespaceOnly", "   ", "", "/"},
		{"MethodOnly", "POST", "", "/"},
		{"MethodAndPathWithSpaces", "  POST   /api/v1/login  ", "POST", "/api/v1/login"},
		{"LowercaseMethod", "get /login", "GET", "/login"},
		{"UppercasePath", "get /STUDENT/Dashboard", "GET", "/student/dashboard"},
		{"RootPath", "GET /", "GET", "/"},
		{"PathOnlyRoot", "/", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMethod, gotPath := parseRoute(tt.input)
			if gotMethod != tt.wantMethod || gotPath != tt.wantPath {
				t.Errorf("parseRoute(%q) = (%q, %q), want (%q, %q)",
					tt.input, gotMethod, gotPath, tt.wantMethod, tt.wantPath)
			}
		})
	}
}

func TestHandle_Success(t *testing.T) {
	g, r := createTestGuard()

	if err := g.Handle("GET /healthz", http.HandlerFunc(dummyHandler)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := g.handlers["/healthz"]["GET"]; !ok {
		t.Fatal("expected handler for GET /healthz not found")
	}
	if len(r.handledPaths) != 1 {
		t.Fatalf("router.Handle should have been called once, got %d", len(r.handledPaths))
	}
	if r.handledPaths[0] != "/healthz" {
		t.Errorf("router.Handle called with %q, want %q", r.handledPaths[0], "/healthz")
	}
}

func TestHandle_DuplicateRoute(t *testing.T) {
	g, _ := createTestGuard()

	if err := g.Handle("GET /login", http.HandlerFunc(dummyHandler)); err != nil {
		t.Fatalf("unexpected error on first handle: %v", err)
	}

	err := g.Handle("GET /login", http.HandlerFunc(dummyHandler))
	if err == nil {
		t.Fatal("expected error for duplicate route, got nil")
	}

	var dupErr *DuplicatePathAndMethodError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicatePathAndMethodError, got %T", err)
	}
	if dupErr.Path != "/login" || dupErr.Method != "GET" {
		t.Errorf("error details: got Path=%q Method=%q, want Path=%q Method=%q",
			dupErr.Path, dupErr.Method, "/login", "GET")
	}
	if got := err.Error(); !strings.Contains(got, "/login") || !strings.Contains(got, "GET") {
		t.Errorf("error message missing details: %q", got)
	}
}

func TestHandle_MultipleMethodsSamePath(t *testing.T) {
	g, r := createTestGuard()

	methods := []string{"GET", "POST", "PUT", "DELETE"}
	for _, method := range methods {
		if err := g.Handle(method+" /admin/rooms", http.HandlerFunc(dummyHandler)); err != nil {
			t.Fatalf("unexpected error for %s: %v", method, err)
		}
	}

	for _, method := range methods {
		if _, ok := g.handlers["/admin/rooms"][method]; !ok {
			t.Errorf("handler for %s /admin/rooms not found", method)
		}
	}
	if len(r.handledPaths) != 1 {
		t.Errorf("router.Handle should be called once per path, got %d calls", len(r.handledPaths))
	}
}

func TestHandle_NilHandler(t *testing.T) {
	g, r := createTestGuard()

	if err := g.Handle("GET /nil", nil); err == nil {
		t.Fatal("expected error for nil handler, got none")
	}
	if err := g.HandleFunc("GET /nil", nil); err == nil {
		t.Fatal("expected error for nil handler func, got none")
	}
	if len(r.handledPaths) != 0 {
		t.Errorf("nothing should be registered, got %v", r.handledPaths)
	}
}

func TestHandle_NoRouter(t *testing.T) {
	g := New(NoopLogger(), nil, nil)

	if err := g.Handle("GET /login", http.HandlerFunc(dummyHandler)); !errors.Is(err, errNoRouter) {
		t.Fatalf("expected errNoRouter, got %v", err)
	}
}

func TestHandle_EmptyRoute(t *testing.T) {
	g, _ := createTestGuard()

	if err := g.Handle("", http.HandlerFunc(dummyHandler)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := g.handlers["/"][""]; !ok {
		t.Error("empty route should default to wildcard root")
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("ExactMethodMatch", func(t *testing.T) {
		g, r := createTestGuard()
		_ = g.HandleFunc("GET /healthz", writeBody("GET handler"))

		rec := r.serve(httptest.NewRequest("GET", "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "GET handler" {
			t.Errorf("expected body 'GET handler', got %q", body)
		}
	})

	t.Run("MethodPriority", func(t *testing.T) {
		g, r := createTestGuard()
		_ = g.HandleFunc("GET /hello", writeBody("specific"))
		_ = g.HandleFunc("/hello", writeBody("wildcard"))

		if body := r.serve(httptest.NewRequest("GET", "/hello", nil)).Body.String(); body != "specific" {
			t.Errorf("expected 'specific', got %q", body)
		}
		if body := r.serve(httptest.NewRequest("POST", "/hello", nil)).Body.String(); body != "wildcard" {
			t.Errorf("expected 'wildcard', got %q", body)
		}
	})

	t.Run("UnknownMethodReturns405", func(t *testing.T) {
		g, r := createTestGuard()
		_ = g.HandleFunc("GET /onlyget", dummyHandler)

		rec := r.serve(httptest.NewRequest("POST", "/onlyget", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("PolicyAppliedAtRequestTime", func(t *testing.T) {
		g, r := createTestGuard()
		_ = g.HandleFunc("GET /admin/dashboard", dummyHandler)

		// set after registration on purpose
		g.SetPolicy("/admin", "*", RestrictedPolicy(models.RoleSet(models.RoleAdmin, models.RoleWarden)))

		rec := r.serve(newRequest(g, "GET", "/admin/dashboard", nil))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("expected redirect to /login, got %q", loc)
		}

		rec = r.serve(newRequest(g, "GET", "/admin/dashboard", signedIn("admin")))
		if rec.Code != http.StatusTeapot {
			t.Errorf("expected 418 for admin, got %d", rec.Code)
		}
	})
}

func TestDuplicatePathAndMethodError_Error(t *testing.T) {
	err := &DuplicatePathAndMethodError{Path: "/login", Method: "GET"}

	expected := "guard: duplicate path: /login and method: GET attempted"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestDuplicatePathAndMethodError_Is(t *testing.T) {
	err1 := &DuplicatePathAndMethodError{Path: "/login", Method: "GET"}
	err2 := &DuplicatePathAndMethodError{Path: "/signup", Method: "POST"}

	if !errors.Is(err1, err2) {
		t.Error("DuplicatePathAndMethodError should match other instances")
	}
	if errors.Is(err1, errors.New("different error")) {
		t.Error("DuplicatePathAndMethodError should not match different error types")
	}
	if !errors.Is(err1, ErrDuplicatePathAndMethod) {
		t.Error("should match sentinel error")
	}
}

func BenchmarkParseRoute(b *testing.B) {
	routes := []string{
		"GET /login",
		"/healthz",
		"POST /api/v1/login",
		"GET /admin/rooms",
	}

	for i := 0; i < b.N; i++ {
		route := routes[i%len(routes)]
		parseRoute(route)
	}
}
