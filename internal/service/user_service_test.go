package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	users, _, _, analytics, uow := setupRepos(t)
	svc := NewUserService(users, uow)
	ctx := context.Background()

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	u, err := svc.Register(ctx, "  alice  ")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.NotEmpty(t, u.ID)
	assert.NotEmpty(t, u.Token)

	t.Run("registration provisions the aggregate row", func(t *testing.T) {
		agg, err := analytics.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, agg.OwnerID)
		assert.Zero(t, agg.TotalSessions)
	})

	t.Run("duplicate token registration cannot happen twice for one user", func(t *testing.T) {
		other, err := svc.Register(ctx, "bob")
		require.NoError(t, err)
		assert.NotEqual(t, u.Token, other.Token)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	users, _, _, _, uow := setupRepos(t)
	svc := NewUserService(users, uow)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice")
	require.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, u.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bogus")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty token is unauthorized", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestUserService_GetOrCreate(t *testing.T) {
	users, _, _, _, uow := setupRepos(t)
	svc := NewUserService(users, uow)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "local")
	require.NoError(t, err)

	second, err := svc.GetOrCreate(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Token, second.Token)
}
