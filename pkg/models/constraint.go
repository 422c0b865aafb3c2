package models

import (
	"slices"
	"strings"
)

// ConstraintKind tags which variant a Constraint holds.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota // any authenticated role
	ConstraintSingle
	ConstraintSet
)

// Constraint is the required-role restriction attached to a protected route.
// The zero value is NoConstraint.
type Constraint struct {
	kind  ConstraintKind
	roles []Role
}

// NoConstraint admits every authenticated session.
func NoConstraint() Constraint {
	return Constraint{kind: ConstraintNone}
}

// SingleRole admits only sessions holding exactly r.
func SingleRole(r Role) Constraint {
	return Constraint{kind: ConstraintSingle, roles: []Role{r}}
}

// RoleSet admits sessions holding any of the given roles.
// Duplicates are dropped. An empty set admits nobody.
func RoleSet(roles ...Role) Constraint {
	set := make([]Role, 0, len(roles))
	for _, r := range roles {
		if !slices.Contains(set, r) {
			set = append(set, r)
		}
	}
	return Constraint{kind: ConstraintSet, roles: set}
}

// Kind returns the variant tag.
func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

// Roles returns a copy of the roles admitted by the constraint.
// It is nil for NoConstraint.
func (c Constraint) Roles() []Role {
	return slices.Clone(c.roles)
}

// Allows is the single membership check used by the guard.
func (c Constraint) Allows(r Role) bool {
	switch c.kind {
	case ConstraintNone:
		return true
	default:
		return slices.Contains(c.roles, r)
	}
}

func (c Constraint) String() string {
	switch c.kind {
	case ConstraintNone:
		return "any"
	case ConstraintSingle:
		return c.roles[0].String()
	default:
		parts := make([]string, 0, len(c.roles))
		for _, r := range c.roles {
			parts = append(parts, r.String())
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
}
