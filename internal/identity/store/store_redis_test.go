package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/internal/identity/store"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

func newRedisSessions(t *testing.T) (*store.RedisSessions, *store.InMemoryStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	base := store.NewInMemoryStore()
	return store.NewRedisSessions(base, client), base
}

func TestRedisSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisSessions(t)

	session := identity.Session{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TimeCreated: time.Now().Unix(),
		TimeExpires: time.Now().Add(time.Hour).Unix(),
		Token:       "tok-redis",
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.SessionByToken(ctx, "tok-redis")
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestRedisSessionNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisSessions(t)

	_, err := s.SessionByToken(ctx, "tok-missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisRecentlyExpiredSessionStillReadable(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisSessions(t)

	// Expired an hour ago, well inside the retention window. The record must
	// stay readable so expiry is reported as expiry, not as an unknown token.
	session := identity.Session{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TimeCreated: time.Now().Add(-2 * time.Hour).Unix(),
		TimeExpires: time.Now().Add(-time.Hour).Unix(),
		Token:       "tok-expired",
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.SessionByToken(ctx, "tok-expired")
	require.NoError(t, err)
	assert.True(t, got.ExpiredAt(time.Now().Unix()))
}

func TestRedisOverlayDelegatesUsersAndBans(t *testing.T) {
	ctx := context.Background()
	s, base := newRedisSessions(t)

	user := identity.User{ID: uuid.New(), TimeCreated: 1000}
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := base.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	ban := identity.Ban{ID: uuid.New(), UserID: user.ID, TimeCreated: 1000, BanLengthSec: 60}
	require.NoError(t, s.CreateBan(ctx, ban))

	gotBan, err := s.MostRecentBan(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, ban.ID, gotBan.ID)
}
