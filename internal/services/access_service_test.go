package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/models"
)

func TestResolveCaller(t *testing.T) {
	companyID := int64(1)
	users := newFakeUserRepo(&models.User{
		ID: 7, CompanyID: &companyID, Role: "employee", IsActive: true,
	})
	svc := NewAccessService(users, newFakeAccessRepo())

	caller, err := svc.ResolveCaller(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), caller.UserID)
	require.NotNil(t, caller.CompanyID)
	assert.Equal(t, int64(1), *caller.CompanyID)
	assert.Equal(t, "employee", caller.Role)
}

func TestResolveCallerErrors(t *testing.T) {
	svc := NewAccessService(newFakeUserRepo(), newFakeAccessRepo())

	_, err := svc.ResolveCaller(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingIdentity)
	_, err = svc.ResolveCaller(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrMissingIdentity)

	// мусор и неизвестный id неразличимы: оба ErrUserNotFound
	_, err = svc.ResolveCaller(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.ResolveCaller(context.Background(), "99")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolveCallerNoCompany(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: 7, Role: "employee", IsActive: true})
	svc := NewAccessService(users, newFakeAccessRepo())

	caller, err := svc.ResolveCaller(context.Background(), "7")
	require.NoError(t, err)
	assert.Nil(t, caller.CompanyID)

	_, err = RequireCompany(caller)
	assert.ErrorIs(t, err, ErrTenantNotAssigned)
}

func TestValidators(t *testing.T) {
	access := newFakeAccessRepo()
	access.users[[2]int64{5, 1}] = true
	access.tasks[[2]int64{10, 1}] = true
	access.processes[[2]int64{3, 1}] = true
	access.bindings[[2]int64{2, 1}] = true
	svc := NewAccessService(newFakeUserRepo(), access)
	ctx := context.Background()

	one := int64(1)
	two := int64(2)

	ok, err := svc.ValidateUserAccess(ctx, 5, &one)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = svc.ValidateUserAccess(ctx, 5, &two)
	assert.False(t, ok)

	ok, _ = svc.ValidateTaskAccess(ctx, 10, &one)
	assert.True(t, ok)
	ok, _ = svc.ValidateTaskAccess(ctx, 11, &one)
	assert.False(t, ok)

	ok, _ = svc.ValidateBusinessProcessAccess(ctx, 3, &one)
	assert.True(t, ok)
	ok, _ = svc.ValidateTelegramGroupAccess(ctx, 2, &one)
	assert.True(t, ok)
}

func TestValidatorsFailClosed(t *testing.T) {
	svc := NewAccessService(newFakeUserRepo(), newFakeAccessRepo())
	ctx := context.Background()
	one := int64(1)

	// nil-компания и нулевой id всегда false без ошибки
	ok, err := svc.ValidateUserAccess(ctx, 5, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, _ = svc.ValidateUserAccess(ctx, 0, &one)
	assert.False(t, ok)
	ok, _ = svc.ValidateTaskAccess(ctx, 10, nil)
	assert.False(t, ok)
	ok, _ = svc.ValidateBusinessProcessAccess(ctx, 0, &one)
	assert.False(t, ok)
	ok, _ = svc.ValidateTelegramGroupAccess(ctx, 1, nil)
	assert.False(t, ok)
}
