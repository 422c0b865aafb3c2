package authstore

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/models/passwd"
	"github.com/google/uuid"
)

// Option configures the sqlite account store.
type Option func(*sqliteAuthStore)

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *sqliteAuthStore) {
		s.hashCost = cost
	}
}

func NewWithSqliteStore(db *sql.DB, logger *slog.Logger, opts ...Option) *sqliteAuthStore {
	s := &sqliteAuthStore{
		db:       db,
		log:      logutil.OrDiscard(logger),
		hashCost: passwd.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store defines a unified interface for interacting with the account datastore.
//
// All methods return error types defined in the models package
// (ValidationError, TransformationError, DatabaseError), or a
// db.DuplicateKeyError when an email is already registered.
type Store interface {

	// CheckEmailExists returns true if a user with the specified email exists in the datastore.
	CheckEmailExists(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user, hashing the password when one is given.
	// An empty role is stored as models.DefaultRole.
	CreateUser(ctx context.Context, args models.CreateUserParams) (*models.User, error)

	// GetUserByEmail retrieves a user by email. A missing user yields a
	// DatabaseError wrapping sql.ErrNoRows.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by their UUID.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// ListUsers returns every user ordered by creation time.
	// Rows that fail to transform are skipped and reported via errors.Join.
	ListUsers(ctx context.Context) ([]*models.User, error)
}
