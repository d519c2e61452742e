package gate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		codes      []FailureCode
		wantStatus int
		wantCode   FailureCode
	}{
		{
			name:       "not found outranks everything",
			codes:      []FailureCode{CodeDataValidationFail, CodeBadRequestMethod, CodeNoSessionToken, CodeURLNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeURLNotFound,
		},
		{
			name:       "credentials outrank method and media type",
			codes:      []FailureCode{CodeBadRequestMethod, CodeBadContentType, CodeNoSessionToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeNoSessionToken,
		},
		{
			name:       "ban outranks method",
			codes:      []FailureCode{CodeBadRequestMethod, CodeBanned},
			wantStatus: http.StatusForbidden,
			wantCode:   CodeBanned,
		},
		{
			name:       "method outranks media type",
			codes:      []FailureCode{CodeBadContentType, CodeBadRequestMethod},
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   CodeBadRequestMethod,
		},
		{
			name:       "media type outranks body shape",
			codes:      []FailureCode{CodeMalformedJSON, CodeBadContentType},
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   CodeBadContentType,
		},
		{
			name:       "body shape outranks data validation",
			codes:      []FailureCode{CodeDataValidationFail, CodeWrongNumberParams},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeWrongNumberParams,
		},
		{
			name:       "data validation alone",
			codes:      []FailureCode{CodeDataValidationFail},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   CodeDataValidationFail,
		},
		{
			name:       "expired session is a credential failure",
			codes:      []FailureCode{CodeExpiredSession},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeExpiredSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs ErrorList
			for _, c := range tt.codes {
				errs.Add(c)
			}
			status, code := classify(&errs)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClassifyDiscoveryOrderIrrelevant(t *testing.T) {
	var a, b ErrorList
	a.Add(CodeBadRequestMethod)
	a.Add(CodeNoSessionToken)
	b.Add(CodeNoSessionToken)
	b.Add(CodeBadRequestMethod)

	statusA, codeA := classify(&a)
	statusB, codeB := classify(&b)
	assert.Equal(t, statusA, statusB)
	assert.Equal(t, codeA, codeB)
}

func TestClassifyUnmatchedSetFallsBackTo500(t *testing.T) {
	var errs ErrorList
	errs.Add(CodeInternalError)
	status, code := classify(&errs)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternalError, code)
}

func TestErrorList(t *testing.T) {
	var errs ErrorList
	assert.True(t, errs.Empty())
	assert.Equal(t, "", errs.Join())

	errs.Add(CodeMalformedJSON)
	errs.Add(CodeBadContentType)
	errs.Add(CodeMalformedJSON) // duplicate ignored

	assert.False(t, errs.Empty())
	assert.True(t, errs.Has(CodeMalformedJSON))
	assert.False(t, errs.Has(CodeBanned))
	assert.Equal(t, []FailureCode{CodeMalformedJSON, CodeBadContentType}, errs.Codes())
	assert.Equal(t, "MALFORMED_JSON,BAD_CONTENT_TYPE", errs.Join())
}
