package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBcryptCost = 4 // keep the test suite fast

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	users, _ := newTestRepos(t)
	svc := NewUserService(users, testBcryptCost)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Greater(t, registered.ID, int64(0))
	assert.Equal(t, "alice", registered.Username)
	assert.Empty(t, registered.PasswordHash)

	authed, err := svc.Authenticate(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
	assert.Equal(t, "alice", authed.Username)
	assert.Empty(t, authed.PasswordHash)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	users, _ := newTestRepos(t)
	svc := NewUserService(users, testBcryptCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestUserServiceRegisterDuplicate(t *testing.T) {
	users, _ := newTestRepos(t)
	svc := NewUserService(users, testBcryptCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other-password")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserServiceAuthenticateFailuresIndistinguishable(t *testing.T) {
	users, _ := newTestRepos(t)
	svc := NewUserService(users, testBcryptCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "alice", "nope")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "hunter22")
	_, missing := svc.Authenticate(ctx, "", "")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.ErrorIs(t, missing, ErrInvalidCredentials)
}
