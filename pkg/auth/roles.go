// Package auth supplies the role-based permission gate the framework core
// consults before attempting any command. Credential handling and session
// management live outside the core; callers pass a pre-resolved role string
// with each request.
package auth

import (
	"errors"
	"fmt"
)

// Permission names an action a role may perform.
type Permission string

const (
	PermView    Permission = "view"
	PermMutate  Permission = "mutate"
	PermExport  Permission = "export"
	PermRestore Permission = "restore"
)

// Valid reports whether the permission is one of the known names.
func (p Permission) Valid() bool {
	switch p {
	case PermView, PermMutate, PermExport, PermRestore:
		return true
	}
	return false
}

// Role is a caller's pre-resolved role string.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleArchitect Role = "architect"
	RoleAnalyst   Role = "analyst"
	RoleViewer    Role = "viewer"
)

// ErrPermissionDenied is returned when a role lacks the required permission.
var ErrPermissionDenied = errors.New("permission denied")

// Checker answers permission queries for roles.
type Checker struct {
	roles map[Role][]Permission
}

// NewChecker creates a checker with the default role map.
func NewChecker() *Checker {
	return &Checker{
		roles: map[Role][]Permission{
			RoleAdmin:     {PermView, PermMutate, PermExport, PermRestore},
			RoleArchitect: {PermView, PermMutate, PermExport},
			RoleAnalyst:   {PermView, PermExport},
			RoleViewer:    {PermView},
		},
	}
}

// NewCheckerWithRoles creates a checker from an explicit role map, e.g. one
// loaded from configuration. Unknown roles simply have no permissions.
func NewCheckerWithRoles(roles map[Role][]Permission) *Checker {
	copied := make(map[Role][]Permission, len(roles))
	for role, perms := range roles {
		copied[role] = append([]Permission(nil), perms...)
	}
	return &Checker{roles: copied}
}

// Can reports whether the role holds the permission.
func (c *Checker) Can(role Role, perm Permission) bool {
	for _, p := range c.roles[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// Require returns ErrPermissionDenied (wrapped with role and permission)
// unless the role holds the permission.
func (c *Checker) Require(role Role, perm Permission) error {
	if !c.Can(role, perm) {
		return fmt.Errorf("role %q lacks %q: %w", role, perm, ErrPermissionDenied)
	}
	return nil
}

// Permissions returns the permission list for a role.
func (c *Checker) Permissions(role Role) []Permission {
	return append([]Permission(nil), c.roles[role]...)
}
