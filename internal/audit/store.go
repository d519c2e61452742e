package audit

import (
	"context"

	"github.com/google/uuid"
)

// HitStore persists hit records. InsertPending followed by Complete is the
// success path; InsertSecurityError is the one-shot failure path.
type HitStore interface {
	InsertSecurityError(ctx context.Context, rec SecurityErrorHit) (uuid.UUID, error)
	InsertPending(ctx context.Context, rec Hit) (uuid.UUID, error)
	// Complete attaches the final status and message code to a pending
	// record. Completing a record twice or completing an unknown ID returns
	// sentinel.ErrNotFound.
	Complete(ctx context.Context, id uuid.UUID, responseCode int, messageCode string) error
}
