package gate

import (
	"encoding/json"
	"strings"
)

// checkRequest runs the request-level checks: 404 tag, method, content type,
// JSON syntax, closed schema, and delegated data validation. Checks
// accumulate rather than short-circuit; the only ordering dependencies are
// that schema checks need a parsed body and data validation needs a valid
// schema. Running it twice on the same context yields the same error set.
func (g *Gate) checkRequest(rc *RequestContext) {
	notFound := rc.Route == RouteNotFound
	if notFound {
		rc.Errors.Add(CodeURLNotFound)
	}

	// All real endpoints are POST-only. A deliberate simplification of the
	// API surface, not an oversight.
	if rc.Method != "POST" {
		rc.Errors.Add(CodeBadRequestMethod)
	}

	if !strings.Contains(rc.ContentType, "application/json") {
		rc.Errors.Add(CodeBadContentType)
	}

	// A 404 has no meaningful body to validate.
	if notFound {
		return
	}

	decoded, ok := decodeJSONObject(rc.Body)
	if !ok {
		rc.Errors.Add(CodeMalformedJSON)
		return
	}
	rc.DecodedBody = decoded

	required, _ := g.schemas.RequiredFields(rc.Route)

	// The schema is closed: the key count must match exactly, then every
	// required key must be present. Equal-count bodies with substituted keys
	// are schema-invalid, not count-invalid.
	if len(decoded) != len(required) {
		rc.Errors.Add(CodeWrongNumberParams)
		return
	}
	for _, field := range required {
		if _, present := decoded[field]; !present {
			rc.Errors.Add(CodeInvalidParams)
			return
		}
	}

	if !g.validator.Validate(rc.Route, decoded) {
		rc.Errors.Add(CodeDataValidationFail)
	}
}

// decodeJSONObject parses the body as a JSON object. Non-object payloads
// (arrays, scalars) count as malformed for our purposes: every endpoint
// schema is a flat object.
func decodeJSONObject(body []byte) (map[string]any, bool) {
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, false
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, true
}
