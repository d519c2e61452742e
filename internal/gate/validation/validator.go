// Package validation implements the per-route value checks that run after a
// body has passed the closed schema check: coordinate ranges, UUID-shaped
// identifiers, text bounds. Field presence is already guaranteed by the time
// these rules run.
package validation

import (
	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/internal/gate"
)

// Text fields share one generous ceiling; per-field limits belong to the
// content domain, the gate only rejects obviously abusive payloads.
const maxTextLen = 10000

// Validator applies value rules per route.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate reports whether the decoded body's values are acceptable for the
// route. Unknown routes pass: no rules means nothing to violate.
func (Validator) Validate(route gate.Route, body map[string]any) bool {
	for _, rule := range rules[route] {
		if !rule(body) {
			return false
		}
	}
	return true
}

type rule func(map[string]any) bool

var rules = map[gate.Route][]rule{
	gate.RouteUploadLocal: {
		coordinate("latitude", 90),
		coordinate("longitude", 180),
		boundedText("text"),
		boundedText("url"),
		boundedText("arn"),
	},
	gate.RouteGetLocal: {
		coordinate("latitude", 90),
		coordinate("longitude", 180),
	},
	gate.RouteUploadLive: {
		boundedText("text"),
		boundedText("url"),
		boundedText("arn"),
	},
	gate.RouteUploadReply:     {uuidField("threadID")},
	gate.RouteGetReply:        {uuidField("threadID")},
	gate.RouteSubscribeLive:   {uuidField("threadID")},
	gate.RouteUnsubscribeLive: {uuidField("threadID")},
	gate.RouteUploadMessage: {
		uuidField("toUserID"),
		boundedText("text"),
		boundedText("url"),
	},
	gate.RouteModReport:         {uuidField("contentID")},
	gate.RouteModBlock:          {uuidField("userID")},
	gate.RouteAnalyticsFeedback: {boundedText("text")},
}

// coordinate requires a JSON number within [-limit, limit].
func coordinate(field string, limit float64) rule {
	return func(body map[string]any) bool {
		v, ok := body[field].(float64)
		return ok && v >= -limit && v <= limit
	}
}

// boundedText requires a string under the global ceiling. Empty is allowed;
// whether a blank field is meaningful is endpoint business logic.
func boundedText(field string) rule {
	return func(body map[string]any) bool {
		s, ok := body[field].(string)
		return ok && len(s) <= maxTextLen
	}
}

// uuidField requires a canonical UUID string.
func uuidField(field string) rule {
	return func(body map[string]any) bool {
		s, ok := body[field].(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	}
}
