package unistay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lalith0024/unistay/internal/config"
	"github.com/Lalith0024/unistay/pkg/builtins"
	"github.com/Lalith0024/unistay/pkg/guard"
	"github.com/Lalith0024/unistay/pkg/store"
	"github.com/go-logr/logr"
)

type UniStay struct {
	logger   *slog.Logger
	config   config.Config
	Store    *store.Store
	Guard    *guard.Guard
	Builtins *builtins.Builtin

	// Hold information to initialize services after configuration
	db       *sql.DB
	dbType   store.DBType
	router   guard.Router
	hashCost int
}

type Option func(*UniStay)

func WithLogger(l *slog.Logger) Option {
	return func(u *UniStay) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithLogr adapts a logr.Logger, for callers that standardise on logr.
func WithLogr(l logr.Logger) Option {
	return func(u *UniStay) {
		if l.GetSink() != nil {
			u.logger = slog.New(logr.ToSlogHandler(l))
		}
	}
}

func WithSqliteDB(db *sql.DB) Option {
	return func(u *UniStay) {
		u.db = db
		u.dbType = store.DBTypeSQLite
	}
}

// WithRouter registers the builtin routes on r. Without a router only the
// guard and the stores are built.
func WithRouter(r guard.Router) Option {
	return func(u *UniStay) {
		u.router = r
	}
}

func WithConfig(cfg config.Config) Option {
	return func(u *UniStay) {
		u.config = cfg
	}
}

// WithHashCost overrides the bcrypt cost for new passwords.
func WithHashCost(cost int) Option {
	return func(u *UniStay) {
		u.hashCost = cost
	}
}

var errNoDatabase = errors.New("no database configured, use WithSqliteDB")

func New(opts ...Option) (*UniStay, error) {
	u := &UniStay{
		logger: slog.New(slog.DiscardHandler),
		config: config.Default(),
	}

	for _, opt := range opts {
		opt(u)
	}

	u.logger.Info("starting unistay")

	if u.db == nil {
		return nil, errNoDatabase
	}
	if err := u.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// check if database is pingable
	if err := u.db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	u.logger.Debug("successfully connected to database")

	// store.New runs the migrations
	s, err := store.New(u.db, u.dbType, u.logger, store.Config{
		TokenSecret: u.config.Token.Secret,
		TokenTTL:    u.config.Token.TTL,
		HashCost:    u.hashCost,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to load stores: %w", err)
	}
	u.Store = s
	u.logger.Debug("unistay stores loaded")

	u.Guard = guard.New(u.logger, u.router, guardConfig(u.config))
	u.logger.Info("unistay guard loaded")

	u.Builtins = builtins.New(u.logger, u.Guard, builtins.Deps{
		Auth:   s.Auth,
		Rooms:  s.Rooms,
		Token:  s.Token,
		Health: s,
	})
	u.Builtins.LoadAllPolicies()

	if u.router != nil {
		if err := u.Builtins.LoadAllRoutes(); err != nil {
			return nil, fmt.Errorf("unable to register routes: %w", err)
		}
		u.logger.Debug("unistay routes registered")
	}

	return u, nil
}

func guardConfig(cfg config.Config) *guard.Config {
	return &guard.Config{
		LoginPath:          cfg.Views.Login,
		LandingPath:        cfg.Views.Landing,
		AdminLandingPath:   cfg.Views.AdminLanding,
		StudentLandingPath: cfg.Views.StudentLanding,
		CookiePath:         cfg.Session.CookiePath,
		CookieSecure:       cfg.Session.CookieSecure,
		CookieMaxAge:       cfg.Session.MaxAge,
		CookieSecret:       cfg.Token.Secret,
	}
}
