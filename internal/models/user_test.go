package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRolesDropsDuplicates(t *testing.T) {
	roles := NormalizeRoles([]UserRole{RoleManager, RoleEmployee, RoleManager})
	assert.Equal(t, []UserRole{RoleManager, RoleEmployee}, roles)
}

func TestEnsureDefaultRole(t *testing.T) {
	assert.Equal(t, []UserRole{RoleEmployee}, EnsureDefaultRole(nil))
	assert.Equal(t, []UserRole{RoleAdmin}, EnsureDefaultRole([]UserRole{RoleAdmin}))
}

func TestHighestRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, HighestRole([]UserRole{RoleEmployee, RoleAdmin, RoleManager}))
	assert.Equal(t, RoleEmployee, HighestRole(nil))
}

func TestHasAtLeast(t *testing.T) {
	assert.True(t, HasAtLeast([]UserRole{RoleManager}, RoleEmployee))
	assert.True(t, HasAtLeast([]UserRole{RoleAdmin}, RoleManager))
	assert.False(t, HasAtLeast([]UserRole{RoleEmployee}, RoleManager))
	assert.False(t, HasAtLeast(nil, RoleEmployee))
}

func TestIsValidRoleList(t *testing.T) {
	assert.True(t, IsValidRoleList([]UserRole{RoleEmployee, RoleManager}))
	assert.False(t, IsValidRoleList([]UserRole{UserRole("root")}))
	assert.False(t, IsValidRoleList(nil))
}
