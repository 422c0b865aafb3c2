package models

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserParams struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password *string `json:"password"`
	Role     Role    `json:"role"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash *string   `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsActive     bool      `json:"isActive"`
}

// Profile is the user record held in the session next to the token.
// Only Role is meaningful to the guard.
type Profile struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// EffectiveRole is the profile's role, defaulting to DefaultRole when absent.
func (p Profile) EffectiveRole() Role {
	return p.Role.OrDefault()
}

// ProfileOf builds the session profile for an account.
func ProfileOf(u *User) Profile {
	return Profile{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
