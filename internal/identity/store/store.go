package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/internal/identity"
)

// Store is the identity/session/ban lookup surface. The gate only reads;
// the login and account-creation handlers also write. Implementations must
// support concurrent use and must not serve stale session or ban rows -
// expiry decisions are correct only against fresh reads.
type Store interface {
	CreateUser(ctx context.Context, user identity.User) error
	UserByID(ctx context.Context, id uuid.UUID) (identity.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, when int64) error

	CreateSession(ctx context.Context, session identity.Session) error
	SessionByToken(ctx context.Context, token string) (identity.Session, error)

	CreateBan(ctx context.Context, ban identity.Ban) error
	// MostRecentBan returns sentinel.ErrNotFound when the user has never
	// been banned.
	MostRecentBan(ctx context.Context, userID uuid.UUID) (identity.Ban, error)
}
