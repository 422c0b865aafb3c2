package unistay

import (
	"bytes"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lalith0024/unistay/internal/config"
	"github.com/go-logr/logr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_RegistersRoutes(t *testing.T) {
	mux := http.NewServeMux()
	u, err := New(
		WithSqliteDB(openMemory(t)),
		WithRouter(mux),
		WithHashCost(bcrypt.MinCost),
	)
	require.NoError(t, err)
	require.NotNil(t, u.Guard)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_ConfigFlowsIntoGuard(t *testing.T) {
	cfg := config.Default()
	cfg.Views.Login = "/signin"
	cfg.Session.CookieSecure = false

	u, err := New(WithSqliteDB(openMemory(t)), WithConfig(cfg))
	require.NoError(t, err)

	assert.Equal(t, "/signin", u.Guard.LoginPath)
	assert.False(t, u.Guard.CookieSecure)
	assert.Equal(t, cfg.Session.MaxAge, u.Guard.CookieMaxAge)
	assert.Equal(t, cfg.Token.Secret, u.Guard.CookieSecret)
}

func TestNew_RoutesFollowConfiguredViews(t *testing.T) {
	cfg := config.Default()
	cfg.Views.Login = "/signin"
	cfg.Views.StudentLanding = "/home"

	mux := http.NewServeMux()
	_, err := New(WithSqliteDB(openMemory(t)), WithConfig(cfg), WithRouter(mux))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signin", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, errNoDatabase)

	cfg := config.Default()
	cfg.Token.Secret = ""
	_, err = New(WithSqliteDB(openMemory(t)), WithConfig(cfg))
	assert.ErrorContains(t, err, "token.secret is required")
}

func TestWithLogr(t *testing.T) {
	var buf bytes.Buffer
	sink := logr.FromSlogHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithSqliteDB(openMemory(t)), WithLogr(sink))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "starting unistay")
}
