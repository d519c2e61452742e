package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrobel/gravity-server/internal/identity/token"
)

func TestIssue(t *testing.T) {
	issuer := token.NewIssuer("test-signing-key", time.Hour)
	userID := uuid.New()
	now := time.Unix(1700000000, 0)

	signed, expires, err := issuer.Issue(userID, now)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, now.Add(time.Hour).Unix(), expires)

	// The token verifies against the shared key and names the user.
	parsed, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("test-signing-key"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, expires, claims.ExpiresAt.Unix())
}

func TestIssueTokensAreUnique(t *testing.T) {
	issuer := token.NewIssuer("test-signing-key", time.Hour)
	userID := uuid.New()
	now := time.Now()

	first, _, err := issuer.Issue(userID, now)
	require.NoError(t, err)
	second, _, err := issuer.Issue(userID, now)
	require.NoError(t, err)

	// Same user, same instant; the random token ID still differs.
	assert.NotEqual(t, first, second)
}
