// Package schema is the static table of required JSON fields per route. The
// schemas are closed: the validator checks exact key-set equality, so a field
// listed here is mandatory and any field not listed is forbidden.
package schema

import "github.com/nwrobel/gravity-server/internal/gate"

// requiredFields maps each real route to its body schema. Routes that take
// an empty object still appear here with an empty set - the closed-schema
// rule then forces the body to decode to exactly {}.
var requiredFields = map[gate.Route][]string{
	gate.RouteSecurityCreate:  {},
	gate.RouteSecurityLogin:   {},
	gate.RouteSecurityBanInfo: {},

	gate.RouteUploadLocal: {"latitude", "longitude", "text", "url", "arn"},
	gate.RouteGetLocal:    {"latitude", "longitude", "seen"},

	gate.RouteUploadLive:      {"text", "url", "arn"},
	gate.RouteGetLive:         {},
	gate.RouteUploadReply:     {"threadID", "text", "url", "arn"},
	gate.RouteGetReply:        {"threadID"},
	gate.RouteSubscribeLive:   {"threadID"},
	gate.RouteUnsubscribeLive: {"threadID"},

	gate.RouteUploadMessage: {"toUserID", "text", "url"},
	gate.RouteGetMessage:    {},

	gate.RouteModReport: {"contentID"},
	gate.RouteModBlock:  {"userID"},

	gate.RouteAnalyticsFeedback: {"text"},
}

// Registry serves required-field lookups. Pure data, safe for concurrent use.
type Registry struct{}

func NewRegistry() *Registry {
	return &Registry{}
}

// RequiredFields returns the closed field set for a route. ok is false for
// unknown routes and the synthetic 404 tag.
func (Registry) RequiredFields(route gate.Route) ([]string, bool) {
	fields, ok := requiredFields[route]
	if !ok {
		return nil, false
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out, true
}
