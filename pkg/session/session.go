// Package session holds the ambient session the guard evaluates: an opaque
// token and a serialized user profile, kept side by side in a key-value store.
//
// All writes go through Context.Establish and Context.Clear so the two
// entries are always set and removed together.
package session

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Lalith0024/unistay/pkg/models"
)

// Keys of the two session entries.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store is a string-keyed session backend. Access is assumed infallible.
type Store interface {
	Get(key string) (string, bool)
	// Put writes every entry in one step.
	Put(entries map[string]string)
	Remove(keys ...string)
}

// Kind classifies a loaded session.
type Kind int

const (
	Unauthenticated Kind = iota
	Authenticated
	Corrupt
)

func (k Kind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case Corrupt:
		return "corrupt"
	default:
		return "unauthenticated"
	}
}

// State is a snapshot of the session taken by Context.Load.
type State struct {
	Kind    Kind
	Token   string
	Profile models.Profile
	Err     error // *models.SessionParseError when Kind is Corrupt
}

// Role returns the effective role of an authenticated session.
func (s State) Role() models.Role {
	return s.Profile.EffectiveRole()
}

// Context is the session object handed to every guard call.
type Context struct {
	store Store
}

// NewContext wraps a store. A nil store is replaced by a private Memory.
func NewContext(store Store) *Context {
	if store == nil {
		store = NewMemory()
	}
	return &Context{store: store}
}

// Load reads the session without modifying it.
//
// A user entry that does not decode into a JSON object makes the state
// Corrupt, with or without a token. Otherwise the session is Authenticated
// only when both entries are present. A token without a user, or a valid
// user without a token, is Unauthenticated.
func (c *Context) Load() State {
	token, hasToken := c.store.Get(TokenKey)
	raw, hasUser := c.store.Get(UserKey)
	if !hasUser || raw == "" {
		return State{Kind: Unauthenticated}
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		return State{Kind: Corrupt, Err: models.NewSessionParseError(raw, err)}
	}
	if !hasToken || token == "" {
		return State{Kind: Unauthenticated}
	}

	return State{Kind: Authenticated, Token: token, Profile: profile}
}

// Establish stores a freshly issued token and the profile it belongs to.
func (c *Context) Establish(token string, profile models.Profile) error {
	if token == "" {
		return models.NewValidationError("session token must not be empty")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	c.store.Put(map[string]string{
		TokenKey: token,
		UserKey:  string(raw),
	})
	return nil
}

// Clear removes both session entries.
func (c *Context) Clear() {
	c.store.Remove(TokenKey, UserKey)
}

var errNotObject = errors.New("user record is not a JSON object")

// decodeProfile accepts only a JSON object; null, arrays and scalars are
// rejected even though encoding/json would accept some of them.
func decodeProfile(raw string) (models.Profile, error) {
	var p models.Profile

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return p, errNotObject
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}
