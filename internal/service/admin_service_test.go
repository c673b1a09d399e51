package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monagenda.fr/myagenda/pkg/apperror"
)

func TestAdminListUsersHidesHashes(t *testing.T) {
	f := newFixtures()
	f.addUser(t, "alice", "3B", false)
	f.addUser(t, "bob", "3B", false)
	svc := NewAdminService(f.users)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	// FindAll orders by username.
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	f := newFixtures()
	admin := f.addUser(t, "admin", "", true)
	alice := f.addUser(t, "alice", "3B", false)
	svc := NewAdminService(f.users)

	ctx := context.Background()

	err := svc.DeleteUser(ctx, admin.ID, admin.ID)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "vous ne pouvez pas vous supprimer vous-même", appErr.Message)

	err = svc.DeleteUser(ctx, admin.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, alice.ID))
	_, err = f.users.FindByID(ctx, alice.ID)
	assert.Error(t, err)
}

func TestAdminToggleAdmin(t *testing.T) {
	f := newFixtures()
	admin := f.addUser(t, "admin", "", true)
	alice := f.addUser(t, "alice", "3B", false)
	svc := NewAdminService(f.users)

	ctx := context.Background()

	isAdmin, err := svc.ToggleAdmin(ctx, admin.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.ToggleAdmin(ctx, admin.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = svc.ToggleAdmin(ctx, admin.ID, admin.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "vous ne pouvez pas modifier vos propres droits", appErr.Message)
}
