package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/internal/identity/store"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

func TestInMemoryUsers(t *testing.T) {
	ctx := context.Background()
	s := store.NewInMemoryStore()

	user := identity.User{ID: uuid.New(), TimeCreated: 1000}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = s.UserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryTouchLastLogin(t *testing.T) {
	ctx := context.Background()
	s := store.NewInMemoryStore()

	user := identity.User{ID: uuid.New(), TimeCreated: 1000}
	require.NoError(t, s.CreateUser(ctx, user))
	require.NoError(t, s.TouchLastLogin(ctx, user.ID, 2000))

	got, err := s.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.TimeLastLogin)

	assert.ErrorIs(t, s.TouchLastLogin(ctx, uuid.New(), 2000), sentinel.ErrNotFound)
}

func TestInMemorySessions(t *testing.T) {
	ctx := context.Background()
	s := store.NewInMemoryStore()

	session := identity.Session{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TimeCreated: 1000,
		TimeExpires: 2000,
		Token:       "tok-1",
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.SessionByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = s.SessionByToken(ctx, "tok-unknown")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryMostRecentBan(t *testing.T) {
	ctx := context.Background()
	s := store.NewInMemoryStore()
	userID := uuid.New()

	_, err := s.MostRecentBan(ctx, userID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	older := identity.Ban{ID: uuid.New(), UserID: userID, TimeCreated: 1000, BanLengthSec: 60}
	newer := identity.Ban{ID: uuid.New(), UserID: userID, TimeCreated: 5000, BanLengthSec: 60}
	middle := identity.Ban{ID: uuid.New(), UserID: userID, TimeCreated: 3000, BanLengthSec: 60}
	require.NoError(t, s.CreateBan(ctx, older))
	require.NoError(t, s.CreateBan(ctx, newer))
	require.NoError(t, s.CreateBan(ctx, middle))

	got, err := s.MostRecentBan(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}
