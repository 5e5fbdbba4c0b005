package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtomilin/pennywise/internal/models"
	"github.com/rtomilin/pennywise/internal/storage"
)

func TestInMemoryUserManager(t *testing.T) {
	t.Parallel()

	m := NewUserRepository()
	ctx := context.Background()

	created, err := m.CreateUser(ctx, models.User{ID: "u1", Name: "A", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.ID)

	_, err = m.CreateUser(ctx, models.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, storage.ErrEmailTaken)

	_, err = m.GetUserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	tokens := []models.RefreshTokenEntry{{TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)}}
	require.NoError(t, m.UpdateRefreshTokens(ctx, "u1", tokens))

	found, err := m.FindUserByTokenHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.ID)

	_, err = m.FindUserByTokenHash(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	// Returned records are copies; mutating them must not leak back.
	found.RefreshTokens[0].TokenHash = "tampered"
	again, err := m.FindUserByTokenHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "h1", again.RefreshTokens[0].TokenHash)
}
