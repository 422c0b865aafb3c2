package authstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lalith0024/unistay/internal/db"
	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/Lalith0024/unistay/pkg/models/passwd"
	"github.com/google/uuid"
)

type sqliteAuthStore struct {
	db       *sql.DB
	log      *slog.Logger
	hashCost int
}

const userColumns = `id, email, name, password_hash, role, created_at, updated_at, is_active`

// userRow mirrors the users table.
type userRow struct {
	ID           string
	Email        string
	Name         string
	PasswordHash sql.NullString
	Role         string
	CreatedAt    int64
	UpdatedAt    int64
	IsActive     bool
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (userRow, error) {
	var u userRow
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.IsActive)
	return u, err
}

func (u userRow) toModel() (models.User, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return models.User{}, err
	}
	usr := models.User{
		ID:        id,
		Email:     u.Email,
		Name:      u.Name,
		Role:      models.Role(u.Role),
		CreatedAt: time.Unix(u.CreatedAt, 0),
		UpdatedAt: time.Unix(u.UpdatedAt, 0),
		IsActive:  u.IsActive,
	}
	if u.PasswordHash.Valid {
		hash := u.PasswordHash.String
		usr.PasswordHash = &hash
	}
	return usr, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *sqliteAuthStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "CheckEmailExists")()

	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, normalizeEmail(email)).Scan(&n)
	if err != nil {
		return false, logutil.LogAndWrapErr(s.log, "failed to check email", models.NewDatabaseError(err))
	}
	return n != 0, nil
}

func (s *sqliteAuthStore) CreateUser(ctx context.Context, args models.CreateUserParams) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "CreateUser")()
	errMsg := "failed to create user"

	args.Email = normalizeEmail(args.Email)
	if args.Email == "" || !strings.Contains(args.Email, "@") {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewValidationError(fmt.Sprintf("invalid email: %q", args.Email)))
	}

	args.Role = args.Role.OrDefault()
	if !args.Role.IsValid() {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewValidationError(fmt.Sprintf("invalid role: %s", args.Role.String())))
	}

	var hash sql.NullString
	if args.Password != nil {
		h, err := passwd.HashPasswordWithCost(*args.Password, s.hashCost)
		if err != nil {
			return nil, logutil.DebugAndWrapErr(s.log, errMsg, models.NewValidationError(err.Error()))
		}
		hash = sql.NullString{String: h, Valid: true}
	}

	now := time.Now().Unix()
	//generate UUID manually for sqlite
	id := uuid.NewString()

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		RETURNING `+userColumns,
		id, args.Email, strings.TrimSpace(args.Name), hash, args.Role.String(), now, now)

	sqlUser, err := scanUser(row)
	if err != nil {
		if dup, dupErr := db.WrapIfDuplicateConstraint(err); dup {
			return nil, logutil.DebugAndWrapErr(s.log, errMsg, dupErr, "email", args.Email)
		}
		return nil, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	user, err := sqlUser.toModel()
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewTransformationError(err.Error()))
	}
	return &user, nil
}

func (s *sqliteAuthStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "GetUserByEmail")()
	errMsg := "failed to get user by email"

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, normalizeEmail(email))
	sqlUser, err := scanUser(row)
	if err != nil {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewDatabaseError(err))
	}
	user, err := sqlUser.toModel()
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewTransformationError(err.Error()))
	}
	return &user, nil
}

func (s *sqliteAuthStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "GetUserByID", "ID", id.String())()
	errMsg := "failed to get user by id"

	if id == uuid.Nil {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewValidationError("id not set"))
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
	sqlUser, err := scanUser(row)
	if err != nil {
		return nil, logutil.DebugAndWrapErr(s.log, errMsg,
			models.NewDatabaseError(err))
	}
	user, err := sqlUser.toModel()
	if err != nil {
		return nil, logutil.LogAndWrapErr(s.log, errMsg,
			models.NewTransformationError(err.Error()))
	}
	return &user, nil
}

func (s *sqliteAuthStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "ListUsers")()
	errMsg := "failed to list users"

	var users []*models.User

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, email`)
	if err != nil {
		return users, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}
	defer rows.Close()

	var errs []error
	for rows.Next() {
		sqlUser, err := scanUser(rows)
		if err != nil {
			return users, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
		}
		user, err := sqlUser.toModel()
		if err != nil {
			errs = append(errs, models.NewTransformationError(err.Error()))
			continue
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return users, logutil.LogAndWrapErr(s.log, errMsg, models.NewDatabaseError(err))
	}

	if len(errs) > 0 {
		// Return partial results with joined transformation errors
		return users, errors.Join(errs...)
	}
	return users, nil
}
