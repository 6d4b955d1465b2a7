package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetUserContext(t *testing.T) {
	t.Run("Valid user", func(t *testing.T) {
		user := &User{ID: "user-123", Username: "testuser"}
		ctx := SetUserContext(context.Background(), user)
		assert.Same(t, user, GetUserFromContext(ctx))
	})

	t.Run("Nil user", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), nil)
		assert.Nil(t, GetUserFromContext(ctx))
	})
}

func TestUserStatus(t *testing.T) {
	assert.True(t, UserStatusActive.IsValid())
	assert.True(t, UserStatusSuspended.IsValid())
	assert.True(t, UserStatusBanned.IsValid())
	assert.False(t, UserStatus("deleted").IsValid())

	assert.False(t, UserStatusActive.RevokesSessions())
	assert.True(t, UserStatusSuspended.RevokesSessions())
	assert.True(t, UserStatusBanned.RevokesSessions())

	assert.True(t, (&User{Status: UserStatusActive}).IsActive())
	assert.False(t, (&User{Status: UserStatusBanned}).IsActive())
}
