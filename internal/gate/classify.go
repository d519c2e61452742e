package gate

import "net/http"

// precedence ranks failure categories for status selection. The first
// category with a detected code wins the HTTP status; discovery order of the
// errors never matters here.
var precedence = []struct {
	status int
	codes  []FailureCode
}{
	{http.StatusNotFound, []FailureCode{CodeURLNotFound}},
	{http.StatusUnauthorized, []FailureCode{
		CodeNoClientID, CodeBadClientID,
		CodeNoSessionToken, CodeBadSessionToken, CodeExpiredSession,
	}},
	{http.StatusForbidden, []FailureCode{CodeBanned}},
	{http.StatusMethodNotAllowed, []FailureCode{CodeBadRequestMethod}},
	{http.StatusUnsupportedMediaType, []FailureCode{CodeBadContentType}},
	{http.StatusBadRequest, []FailureCode{
		CodeMalformedJSON, CodeWrongNumberParams, CodeInvalidParams,
	}},
	{http.StatusUnprocessableEntity, []FailureCode{CodeDataValidationFail}},
}

// classify picks the single status and failure code for a non-secure request.
// A non-empty error set that matches no category is a programming error and
// maps to 500 so it surfaces loudly rather than leaking through as a client
// error.
func classify(errs *ErrorList) (int, FailureCode) {
	for _, class := range precedence {
		for _, code := range class.codes {
			if errs.Has(code) {
				return class.status, code
			}
		}
	}
	return http.StatusInternalServerError, CodeInternalError
}
