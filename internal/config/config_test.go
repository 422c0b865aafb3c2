package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unistay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "/login", cfg.Views.Login)
	assert.Equal(t, "/dashboard", cfg.Views.Landing)
	assert.Equal(t, "/admin/dashboard", cfg.Views.AdminLanding)
	assert.Equal(t, "/student/dashboard", cfg.Views.StudentLanding)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
database:
  path: /var/lib/unistay/app.db
session:
  cookie_secure: false
  max_age: 2h
token:
  secret: s3cret
  ttl: 30m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/unistay/app.db", cfg.Database.Path)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "s3cret", cfg.Token.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, "/", cfg.Session.CookiePath)
	assert.Equal(t, "/login", cfg.Views.Login)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, `
token:
  secret: ""
  ttl: 0s
`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "token.secret is required")
	assert.ErrorContains(t, err, "token.ttl must be positive")
}

func TestValidate_Views(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *ViewsConfig)
		wantErr string
	}{
		{"custom paths", func(v *ViewsConfig) { v.Login = "/signin"; v.Landing = "/admin/welcome" }, ""},
		{"empty", func(v *ViewsConfig) { v.Login = "" }, "views.login is required"},
		{"relative", func(v *ViewsConfig) { v.Landing = "dashboard" }, "views.landing must be an absolute path"},
		{"root", func(v *ViewsConfig) { v.Landing = "/" }, "views.landing must be an absolute path"},
		{"uppercase", func(v *ViewsConfig) { v.AdminLanding = "/Admin" }, "views.admin_landing must be lowercase"},
		{"api", func(v *ViewsConfig) { v.StudentLanding = "/api/v1/me" }, "must not be under /api"},
		{"builtin route", func(v *ViewsConfig) { v.Login = "/signup" }, "must not use the builtin route /signup"},
		{"shared path", func(v *ViewsConfig) { v.StudentLanding = "/dashboard" }, "views.landing and views.student_landing must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg.Views)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "token.secret")
	assert.Contains(t, warnings[1], "session.cookie_secure")

	cfg.Token.Secret = "s3cret"
	cfg.Session.CookieSecure = false
	assert.Empty(t, cfg.Warnings())
}
