package models

import "slices"

// Role represents a user role in the system
type Role string

// These are the roles a UniStay account can hold
const (
	RoleStudent Role = "student" // resident, sees their own room, payments and notices
	RoleWarden  Role = "warden"  // runs a hostel block, shares the admin dashboard
	RoleAdmin   Role = "admin"   // full administrative control
)

// DefaultRole is assumed when a stored profile carries no role.
const DefaultRole = RoleStudent

// knownRoles lists every role accepted on account creation.
var knownRoles = []Role{RoleStudent, RoleWarden, RoleAdmin}

// staffRoles are routed to the admin landing view.
var staffRoles = []Role{RoleAdmin, RoleWarden}

// ListRoles returns the known roles as strings.
func ListRoles() []string {
	result := make([]string, 0, len(knownRoles))
	for _, r := range knownRoles {
		result = append(result, r.String())
	}
	return result
}

// IsValid checks if the Role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	return slices.Contains(knownRoles, r)
}

// IsStaff reports whether the role belongs on the admin side of the application.
func (r Role) IsStaff() bool {
	return slices.Contains(staffRoles, r)
}

// OrDefault returns the role, or DefaultRole when the role is empty.
func (r Role) OrDefault() Role {
	if r == "" {
		return DefaultRole
	}
	return r
}

// String implements the fmt.Stringer interface, providing a string representation of the Role.
func (r Role) String() string {
	return string(r)
}
