// Package config loads the YAML file that configures `unistay serve`.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Views    ViewsConfig    `yaml:"views"`
	Token    TokenConfig    `yaml:"token"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SessionConfig holds the attributes of the token and user cookies.
type SessionConfig struct {
	CookiePath   string        `yaml:"cookie_path"`
	CookieSecure bool          `yaml:"cookie_secure"`
	MaxAge       time.Duration `yaml:"max_age"`
}

type ViewsConfig struct {
	Login          string `yaml:"login"`
	Landing        string `yaml:"landing"`
	AdminLanding   string `yaml:"admin_landing"`
	StudentLanding string `yaml:"student_landing"`
}

type TokenConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// DefaultTokenSecret is the placeholder secret used when no file sets one.
const DefaultTokenSecret = "change-me"

// Default returns a configuration that runs locally without a file.
// The token secret is a placeholder and must be overridden in production.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{Path: "unistay.db"},
		Session: SessionConfig{
			CookiePath:   "/",
			CookieSecure: true,
			MaxAge:       24 * time.Hour,
		},
		Views: ViewsConfig{
			Login:          "/login",
			Landing:        "/dashboard",
			AdminLanding:   "/admin/dashboard",
			StudentLanding: "/student/dashboard",
		},
		Token: TokenConfig{
			Secret: DefaultTokenSecret,
			TTL:    24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults. Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every missing required value.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Token.Secret == "" {
		errs = append(errs, errors.New("token.secret is required"))
	}
	if c.Token.TTL <= 0 {
		errs = append(errs, errors.New("token.ttl must be positive"))
	}
	if c.Session.MaxAge < 0 {
		errs = append(errs, errors.New("session.max_age must not be negative"))
	}
	errs = append(errs, c.Views.validate()...)
	return errors.Join(errs...)
}

// reservedPaths are served by fixed builtin routes.
var reservedPaths = []string{"/signup", "/logout", "/healthz", "/admin/rooms"}

// validate checks that every view is a distinct lowercase absolute path the
// builtin routes can serve.
func (v ViewsConfig) validate() []error {
	var errs []error
	seen := make(map[string]string)
	for _, view := range []struct{ key, path string }{
		{"views.login", v.Login},
		{"views.landing", v.Landing},
		{"views.admin_landing", v.AdminLanding},
		{"views.student_landing", v.StudentLanding},
	} {
		switch {
		case view.path == "":
			errs = append(errs, fmt.Errorf("%s is required", view.key))
			continue
		case !strings.HasPrefix(view.path, "/") || view.path == "/":
			errs = append(errs, fmt.Errorf("%s must be an absolute path below /, got %q", view.key, view.path))
		case view.path != strings.ToLower(view.path):
			errs = append(errs, fmt.Errorf("%s must be lowercase, got %q", view.key, view.path))
		case strings.HasPrefix(view.path, "/api/"):
			errs = append(errs, fmt.Errorf("%s must not be under /api, got %q", view.key, view.path))
		}
		for _, reserved := range reservedPaths {
			if view.path == reserved {
				errs = append(errs, fmt.Errorf("%s must not use the builtin route %s", view.key, reserved))
			}
		}
		if other, ok := seen[view.path]; ok {
			errs = append(errs, fmt.Errorf("%s and %s must differ, both are %q", other, view.key, view.path))
		}
		seen[view.path] = view.key
	}
	return errs
}

// Warnings reports settings that are valid but likely wrong for
// `unistay serve`, which listens on plain HTTP.
func (c Config) Warnings() []string {
	var warnings []string
	if c.Token.Secret == DefaultTokenSecret {
		warnings = append(warnings, "token.secret is the default placeholder, tokens and session cookies can be forged by anyone who knows it")
	}
	if c.Session.CookieSecure {
		warnings = append(warnings, "session.cookie_secure is set but the server listens on plain HTTP, browsers only send the session cookies over HTTPS or to localhost")
	}
	return warnings
}
