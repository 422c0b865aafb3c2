package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Lalith0024/unistay/database"
	"github.com/Lalith0024/unistay/internal/authstore"
	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/internal/roomstore"
	"github.com/Lalith0024/unistay/internal/tokenstore"
	"github.com/Lalith0024/unistay/pkg/models/passwd"
)

type Store struct {
	db     *sql.DB
	log    *slog.Logger
	Auth   Authstore
	Rooms  Roomstore
	Token  Tokenstore
	dbType DBType
}

type DBType string

const (
	DBTypeSQLite DBType = "sqlite"
)

var errUnknownDBType = errors.New("unknown database type")

// Config carries the settings the stores need beyond the database handle.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
	HashCost    int // bcrypt cost for new passwords, zero selects passwd.DefaultCost
}

// New initializes and returns a Store with the account, room and token
// stores for the given backend. It also runs the database migrations
// required for the stores.
//
// Params:
//   - db: a live database connection
//   - dbType: the type of database used to pick the store implementations
//   - log: a slog.Logger pointer instance used for logging
//   - cfg: token signing settings and password hashing cost
//
// Example:
//
//	s, err := store.New(db, store.DBTypeSQLite, logger, store.Config{TokenSecret: secret, TokenTTL: time.Hour})
func New(db *sql.DB, dbType DBType, log *slog.Logger, cfg Config) (*Store, error) {
	s := &Store{
		db:     db,
		log:    logutil.OrDiscard(log),
		dbType: dbType,
	}

	token, err := tokenstore.New(s.log, cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "unable to create token store", err)
	}
	s.Token = token

	hashCost := cfg.HashCost
	if hashCost == 0 {
		hashCost = passwd.DefaultCost
	}

	switch dbType {
	case DBTypeSQLite:
		s.Auth = authstore.NewWithSqliteStore(s.db, s.log, authstore.WithHashCost(hashCost))
		s.Rooms = roomstore.NewWithSqliteStore(s.db, s.log)
	default:
		return nil, logutil.LogAndWrapErr(s.log, "unable to create stores", errUnknownDBType, "dbType", dbType)
	}

	if err := s.runMigrations(); err != nil {
		return nil, logutil.LogAndWrapErr(s.log, "unable to run migrations", err)
	}

	return s, nil
}

func (s *Store) runMigrations() error {
	return logutil.LogDurationWithError(s.log, "database migrations", func() error {
		switch s.dbType {
		case DBTypeSQLite:
			return database.RunSqliteMigrations(s.db)
		default:
			return errUnknownDBType
		}
	}, "dbType", s.dbType)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Authstore manages user accounts. See authstore.Store.
type Authstore = authstore.Store

// Roomstore lists and seeds the room inventory. See roomstore.Store.
type Roomstore = roomstore.Store

// Tokenstore issues and verifies session tokens. See tokenstore.TokenStore.
type Tokenstore = tokenstore.TokenStore
