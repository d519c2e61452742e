package gate_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrobel/gravity-server/internal/gate"
	"github.com/nwrobel/gravity-server/internal/gate/schema"
	"github.com/nwrobel/gravity-server/internal/gate/validation"
	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/pkg/testutil"
)

var errStoreDown = errors.New("store down")

// downStore simulates an unavailable backing store: every lookup fails with
// an infrastructure error rather than not-found.
type downStore struct{}

func (downStore) UserByID(context.Context, uuid.UUID) (identity.User, error) {
	return identity.User{}, errStoreDown
}

func (downStore) SessionByToken(context.Context, string) (identity.Session, error) {
	return identity.Session{}, errStoreDown
}

func (downStore) MostRecentBan(context.Context, uuid.UUID) (identity.Ban, error) {
	return identity.Ban{}, errStoreDown
}

type panicValidator struct{}

func (panicValidator) Validate(gate.Route, map[string]any) bool {
	panic("validator blew up")
}

func newBoundaryGate(identities gate.IdentityStore, validator gate.DataValidator, sink *recordingSink, notifier *recordingNotifier) *gate.Gate {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if validator == nil {
		validator = validation.New()
	}
	return gate.New(
		gate.Config{ResponseMessages: true, BanCheckEnabled: true},
		schema.NewRegistry(),
		validator,
		identities,
		sink,
		notifier,
		logger,
		gate.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	)
}

func TestStoreFailureBecomesUnclassified500(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	g := newBoundaryGate(downStore{}, nil, sink, notifier)

	req := testutil.NewJSONRequest(t, "POST", "/local/upload", map[string]any{
		"latitude":  40.0,
		"longitude": -73.9,
		"text":      "hi",
		"url":       "x",
		"arn":       "y",
	})
	req.Header.Set(gate.HeaderSessionToken, "tok-whatever")

	verdict := g.Run(context.Background(), gate.RouteUploadLocal, req)

	require.False(t, verdict.Secure)
	assert.Equal(t, http.StatusInternalServerError, verdict.Response.Status)
	assert.Contains(t, verdict.Errors, gate.CodeInternalError)

	// The captured error goes out-of-band and the failure is still audited.
	require.Equal(t, 1, notifier.count())
	assert.ErrorIs(t, notifier.reports[0], errStoreDown)
	require.Len(t, sink.failures, 1)
	assert.Equal(t, http.StatusInternalServerError, sink.failures[0].status)
}

func TestStoreFailureOutranksEarlierClientErrors(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	g := newBoundaryGate(downStore{}, nil, sink, notifier)

	// Wrong method and content type were detected before the store fell over;
	// an unfinished pipeline still reports 500, not a client error.
	req := testutil.NewRequestWithBody(t, "GET", "/local/upload", `{}`)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set(gate.HeaderSessionToken, "tok-whatever")

	verdict := g.Run(context.Background(), gate.RouteUploadLocal, req)

	require.False(t, verdict.Secure)
	assert.Equal(t, http.StatusInternalServerError, verdict.Response.Status)
}

func TestCollaboratorPanicBecomesUnclassified500(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	g := newBoundaryGate(downStore{}, panicValidator{}, sink, notifier)

	// security-create needs no identity lookup, so the panicking validator is
	// the first collaborator to run.
	req := testutil.NewJSONRequest(t, "POST", "/security/create", map[string]any{})

	verdict := g.Run(context.Background(), gate.RouteSecurityCreate, req)

	require.False(t, verdict.Secure)
	assert.Equal(t, http.StatusInternalServerError, verdict.Response.Status)
	assert.Contains(t, verdict.Errors, gate.CodeInternalError)
	assert.Equal(t, 1, notifier.count())
}
