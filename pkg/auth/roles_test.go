package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRoleMap(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdmin, PermRestore, true},
		{RoleAdmin, PermMutate, true},
		{RoleArchitect, PermMutate, true},
		{RoleArchitect, PermRestore, false},
		{RoleAnalyst, PermExport, true},
		{RoleAnalyst, PermMutate, false},
		{RoleViewer, PermView, true},
		{RoleViewer, PermExport, false},
		{Role("unknown"), PermView, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Can(tt.role, tt.perm), "%s/%s", tt.role, tt.perm)
	}
}

func TestRequireWrapsSentinel(t *testing.T) {
	c := NewChecker()

	assert.NoError(t, c.Require(RoleArchitect, PermMutate))

	err := c.Require(RoleViewer, PermMutate)
	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Contains(t, err.Error(), "viewer")
}

func TestCustomRoleMap(t *testing.T) {
	c := NewCheckerWithRoles(map[Role][]Permission{
		"auditor": {PermView, PermExport},
	})

	assert.True(t, c.Can("auditor", PermExport))
	assert.False(t, c.Can(RoleAdmin, PermView)) // not in the custom map
	assert.Equal(t, []Permission{PermView, PermExport}, c.Permissions("auditor"))
}
