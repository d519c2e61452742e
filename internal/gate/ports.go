package gate

import (
	"context"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/internal/identity"
)

// IdentityStore is the gate's read-only view of the identity domain. The
// concrete store satisfies this as a subset of its full interface.
// Implementations return sentinel.ErrNotFound for missing rows; any other
// error is treated as infrastructure failure and escapes to the
// orchestrator's 500 boundary.
type IdentityStore interface {
	UserByID(ctx context.Context, id uuid.UUID) (identity.User, error)
	SessionByToken(ctx context.Context, token string) (identity.Session, error)
	MostRecentBan(ctx context.Context, userID uuid.UUID) (identity.Ban, error)
}

// SchemaRegistry returns the exact required field set for a route. ok is
// false for routes with no registered schema (the 404 tag).
type SchemaRegistry interface {
	RequiredFields(route Route) (fields []string, ok bool)
}

// DataValidator checks field values (types, ranges) after the schema check
// has passed. It never sees syntactically or structurally invalid bodies.
type DataValidator interface {
	Validate(route Route, body map[string]any) bool
}

// AuditSink persists one record per request. Failure records are complete on
// first write; success records are written pending and completed later by
// the handler through the returned record ID.
type AuditSink interface {
	RecordFailure(ctx context.Context, rc *RequestContext) error
	RecordPendingSuccess(ctx context.Context, rc *RequestContext) (string, error)
}

// Notifier receives out-of-band reports for unclassified server errors,
// independent of the audit record.
type Notifier interface {
	ReportError(ctx context.Context, err error)
}
