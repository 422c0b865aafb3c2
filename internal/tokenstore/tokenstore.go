// Package tokenstore issues the session token written next to the user
// profile at login. Tokens are HS256 JWTs carrying the subject and role.
package tokenstore

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lalith0024/unistay/internal/logutil"
	"github.com/Lalith0024/unistay/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmptySecret  = errors.New("token signing secret must not be empty")
	ErrInvalidToken = errors.New("invalid token or claims")
)

// TokenPayload holds the claims of a session token. The user id travels as
// the registered "sub" claim.
type TokenPayload struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (p *TokenPayload) UserID() (uuid.UUID, error) {
	return uuid.Parse(p.Subject)
}

// TokenStore issues and verifies session tokens.
type TokenStore interface {
	// IssueToken generates a signed JWT for the given user and returns its expiry.
	IssueToken(user *models.User) (string, time.Time, error)

	// ParseToken validates the signature and expiry of a JWT string.
	ParseToken(tokenStr string) (*TokenPayload, error)

	// TTL is the lifetime of newly issued tokens.
	TTL() time.Duration
}

type jwtTokenStore struct {
	log           *slog.Logger
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func New(logger *slog.Logger, signingSecret string, tokenDuration time.Duration) (*jwtTokenStore, error) {
	if signingSecret == "" {
		return nil, ErrEmptySecret
	}
	if tokenDuration <= 0 {
		return nil, fmt.Errorf("token duration must be positive, got %s", tokenDuration)
	}
	return &jwtTokenStore{
		log:           logutil.OrDiscard(logger),
		jwtSecret:     []byte(signingSecret),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}, nil
}

func (t *jwtTokenStore) TTL() time.Duration {
	return t.tokenDuration
}

func (t *jwtTokenStore) IssueToken(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", time.Time{}, models.NewValidationError("cannot issue token without a user id")
	}

	now := t.now()
	expires := now.Add(t.tokenDuration)
	payload := TokenPayload{
		Role: user.Role.OrDefault(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(t.jwtSecret)
	if err != nil {
		return "", time.Time{}, logutil.LogAndWrapErr(t.log, "failed to sign token", err, "user_id", user.ID.String())
	}
	return signed, expires, nil
}

func (t *jwtTokenStore) ParseToken(tokenStr string) (*TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenPayload{}, func(token *jwt.Token) (interface{}, error) {
		return t.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, logutil.DebugAndWrapErr(t.log, "failed to parse token", err)
	}

	payload, ok := token.Claims.(*TokenPayload)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return payload, nil
}
