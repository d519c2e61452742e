// Package gate implements the request security layer: every inbound request,
// including synthetic 404s, is normalized, validated against its route's
// closed parameter schema, resolved to an identity or session, classified
// into exactly one HTTP status, and audit logged - before any business logic
// runs.
package gate

import (
	"net/http"

	"github.com/nwrobel/gravity-server/internal/identity"
)

// RequestContext is the per-request working record. It is created by the
// normalizer, filled in by each pipeline stage, and discarded once the
// verdict is returned. Nothing in it is shared across requests.
type RequestContext struct {
	// Raw request metadata, populated by the normalizer.
	Timestamp   int64
	ClientIP    string
	Method      string
	Route       Route
	URL         string
	ContentType string
	UserAgent   string
	Body        []byte

	// Custom header values, if the client sent them.
	ClientID     string
	SessionToken string

	// DecodedBody is non-nil if and only if the body parsed as JSON.
	DecodedBody map[string]any

	// Resolved identity. An expired session is still attached together with
	// its owner; callers must reject on the error list, not on nil checks.
	User    *identity.User
	Session *identity.Session

	// Detected failures, in discovery order.
	Errors ErrorList

	// Populated by the classifier when the request is not secure.
	Status      int
	FailureCode FailureCode
}

// Verdict is the gate's complete output for one request.
type Verdict struct {
	Secure bool

	// Response is ready to send and present if and only if Secure is false.
	Response *Response

	// Context carried forward for secure requests.
	User    *identity.User
	Session *identity.Session
	Body    map[string]any

	// RecordID identifies the pending audit record for secure requests; the
	// handler passes it back to the recorder once its own outcome is known.
	RecordID string

	// Errors lists every detected failure in discovery order.
	Errors []FailureCode
}

// Response is a prepared rejection. The body is diagnostic only - the comma
// joined error list when response messages are enabled, empty otherwise -
// and carries no contract for clients.
type Response struct {
	Status int
	Body   string
}

// Write sends the prepared response.
func (r *Response) Write(w http.ResponseWriter) {
	w.WriteHeader(r.Status)
	if r.Body != "" {
		_, _ = w.Write([]byte(r.Body))
	}
}
