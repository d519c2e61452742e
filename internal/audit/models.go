// Package audit persists one hit record per inbound request. Rejected
// requests are written complete in a single pass; accepted requests get a
// pending record that the owning handler completes once its own outcome is
// known.
package audit

import "github.com/google/uuid"

// Message codes stamped on hit records by the recorder. Handlers stamp their
// own outcome codes when completing pending records.
const (
	MessageCodeSecurityError = "SECURITY_ERROR"
	MessageCodePending       = ""
)

// Hit is the base record written for every request that passes the gate.
// ResponseCode and MessageCode stay empty until the handler completes it.
type Hit struct {
	ID           uuid.UUID
	TimeCreated  int64
	URL          string
	IP           string
	UserID       *uuid.UUID
	SessionID    *uuid.UUID
	ResponseCode int
	MessageCode  string
}

// SecurityErrorHit extends Hit with the request evidence kept for rejected
// requests: enough to reconstruct what the client sent without replaying it.
type SecurityErrorHit struct {
	Hit
	RequestMethod      string
	RequestContentType string
	RequestData        string
	UserAgent          string
	ClientName         string // browser/app family parsed from the user agent
	Errors             string // comma-joined failure codes, discovery order
}
