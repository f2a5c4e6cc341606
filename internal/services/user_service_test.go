package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatehub/internal/auth"
	apperrors "estatehub/internal/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	token, user, err := env.userSvc.Register(ctx, " Alice ", "Alice@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.Password)

	claims, err := auth.ValidateJWT(token.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	_, _, err = env.userSvc.Register(ctx, "Alice Again", "alice@example.com", "secret2")
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	_, loggedIn, err := env.userSvc.Login(ctx, "ALICE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = env.userSvc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, _, err = env.userSvc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	env := newEnv(t, nil)
	_, _, err := env.userSvc.Register(context.Background(), "Alice", "alice", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSearchByEmail(t *testing.T) {
	env := newEnv(t, nil)
	for i := 0; i < 7; i++ {
		env.seedUser(t, fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@example.com", i))
	}
	env.seedUser(t, "Other", "someone@else.org")
	ctx := context.Background()

	found, err := env.userSvc.SearchByEmail(ctx, "EXAMPLE")
	require.NoError(t, err)
	assert.Len(t, found, 5)

	found, err = env.userSvc.SearchByEmail(ctx, "else")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Other", found[0].Name)

	found, err = env.userSvc.SearchByEmail(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}
