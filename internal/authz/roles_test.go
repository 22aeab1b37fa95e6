package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownRole(t *testing.T) {
	assert.True(t, IsKnownRole(RoleDirector))
	assert.True(t, IsKnownRole(RoleDepartmentHead))
	assert.True(t, IsKnownRole(RoleEmployee))
	assert.True(t, IsKnownRole(RoleAdmin))
	assert.False(t, IsKnownRole("manager"))
	assert.False(t, IsKnownRole(""))
}

func TestIsElevated(t *testing.T) {
	assert.True(t, IsElevated(RoleDirector))
	assert.True(t, IsElevated(RoleDepartmentHead))
	assert.True(t, IsElevated(RoleAdmin))
	assert.False(t, IsElevated(RoleEmployee))
}

func TestCanDeleteTask(t *testing.T) {
	// руководители удаляют любые задачи компании
	assert.True(t, CanDeleteTask(RoleDirector, 1, 2))
	assert.True(t, CanDeleteTask(RoleDepartmentHead, 1, 2))
	// рядовой сотрудник — только свои
	assert.True(t, CanDeleteTask(RoleEmployee, 7, 7))
	assert.False(t, CanDeleteTask(RoleEmployee, 7, 8))
}
