package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"github.com/nwrobel/gravity-server/internal/gate"
)

// Recorder adapts the gate's audit sink to the hit store, mapping the
// request context into hit records and handing record IDs back for the
// two-phase success path.
type Recorder struct {
	store HitStore
}

func NewRecorder(store HitStore) *Recorder {
	return &Recorder{store: store}
}

// RecordFailure writes the complete failure record in one pass: the
// classifier has already resolved the status, and there is no later outcome
// to wait for.
func (r *Recorder) RecordFailure(ctx context.Context, rc *gate.RequestContext) error {
	rec := SecurityErrorHit{
		Hit: Hit{
			TimeCreated:  rc.Timestamp,
			URL:          rc.URL,
			IP:           rc.ClientIP,
			UserID:       userID(rc),
			SessionID:    sessionID(rc),
			ResponseCode: rc.Status,
			MessageCode:  MessageCodeSecurityError,
		},
		RequestMethod:      rc.Method,
		RequestContentType: rc.ContentType,
		RequestData:        string(rc.Body),
		UserAgent:          rc.UserAgent,
		ClientName:         clientName(rc.UserAgent),
		Errors:             rc.Errors.Join(),
	}
	if _, err := r.store.InsertSecurityError(ctx, rec); err != nil {
		return fmt.Errorf("record failure hit: %w", err)
	}
	return nil
}

// RecordPendingSuccess writes the lightweight first-phase record and returns
// its ID; the handler completes it after business logic finishes.
func (r *Recorder) RecordPendingSuccess(ctx context.Context, rc *gate.RequestContext) (string, error) {
	rec := Hit{
		TimeCreated: rc.Timestamp,
		URL:         rc.URL,
		IP:          rc.ClientIP,
		UserID:      userID(rc),
		SessionID:   sessionID(rc),
	}
	id, err := r.store.InsertPending(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("record pending hit: %w", err)
	}
	return id.String(), nil
}

// CompleteRecord attaches the handler's final outcome to a pending record.
func (r *Recorder) CompleteRecord(ctx context.Context, recordID string, responseCode int, messageCode string) error {
	id, err := uuid.Parse(recordID)
	if err != nil {
		return fmt.Errorf("parse hit record id: %w", err)
	}
	if err := r.store.Complete(ctx, id, responseCode, messageCode); err != nil {
		return fmt.Errorf("complete hit record: %w", err)
	}
	return nil
}

func userID(rc *gate.RequestContext) *uuid.UUID {
	if rc.User == nil {
		return nil
	}
	id := rc.User.ID
	return &id
}

func sessionID(rc *gate.RequestContext) *uuid.UUID {
	if rc.Session == nil {
		return nil
	}
	id := rc.Session.ID
	return &id
}

func clientName(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.New(ua)
	name, _ := parsed.Browser()
	return name
}
