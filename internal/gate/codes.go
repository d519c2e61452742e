package gate

// FailureCode is one of the closed set of security failure categories. The
// strings are stable: they appear verbatim in audit records and, when
// diagnostics are enabled, in response bodies.
type FailureCode string

const (
	CodeURLNotFound        FailureCode = "URL_NOT_FOUND"
	CodeNoClientID         FailureCode = "NO_CLIENT_ID"
	CodeBadClientID        FailureCode = "BAD_CLIENT_ID"
	CodeNoSessionToken     FailureCode = "NO_SESSION_TOKEN"
	CodeBadSessionToken    FailureCode = "BAD_SESSION_TOKEN"
	CodeExpiredSession     FailureCode = "EXPIRED_SESSION"
	CodeBanned             FailureCode = "BANNED_FROM_SERVICE"
	CodeBadRequestMethod   FailureCode = "BAD_REQUEST_METHOD"
	CodeBadContentType     FailureCode = "BAD_CONTENT_TYPE"
	CodeMalformedJSON      FailureCode = "MALFORMED_JSON"
	CodeWrongNumberParams  FailureCode = "WRONG_NUMBER_JSON_PARAMS"
	CodeInvalidParams      FailureCode = "INVALID_JSON_PARAMS"
	CodeDataValidationFail FailureCode = "DATA_VALIDATION_FAIL"

	// CodeInternalError is registered only by the orchestrator boundary when
	// a collaborator escapes (store down, panic downstream). It matches no
	// precedence category, so classification lands on the 500 fallback.
	CodeInternalError FailureCode = "INTERNAL_SERVER_ERROR"
)

// ErrorList is an ordered, duplicate-free set of failure codes. Insertion
// order matters for display and audit output; it never influences status
// selection, which follows the classifier's fixed precedence.
type ErrorList struct {
	codes []FailureCode
}

// Add appends a code if not already present.
func (l *ErrorList) Add(code FailureCode) {
	for _, c := range l.codes {
		if c == code {
			return
		}
	}
	l.codes = append(l.codes, code)
}

// Has reports whether a code was detected.
func (l *ErrorList) Has(code FailureCode) bool {
	for _, c := range l.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Empty reports whether no failures were detected.
func (l *ErrorList) Empty() bool {
	return len(l.codes) == 0
}

// Codes returns the detected codes in insertion order.
func (l *ErrorList) Codes() []FailureCode {
	out := make([]FailureCode, len(l.codes))
	copy(out, l.codes)
	return out
}

// Join renders the list as a comma separated string for audit rows and
// diagnostic response bodies.
func (l *ErrorList) Join() string {
	s := ""
	for i, c := range l.codes {
		if i > 0 {
			s += ","
		}
		s += string(c)
	}
	return s
}
