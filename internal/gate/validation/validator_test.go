package validation_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nwrobel/gravity-server/internal/gate"
	"github.com/nwrobel/gravity-server/internal/gate/validation"
)

func TestValidateCoordinates(t *testing.T) {
	v := validation.New()

	base := func() map[string]any {
		return map[string]any{
			"latitude":  40.0,
			"longitude": -73.9,
			"text":      "hi",
			"url":       "x",
			"arn":       "y",
		}
	}

	tests := []struct {
		name string
		mod  func(map[string]any)
		want bool
	}{
		{"valid body", func(map[string]any) {}, true},
		{"latitude at boundary", func(b map[string]any) { b["latitude"] = 90.0 }, true},
		{"latitude out of range", func(b map[string]any) { b["latitude"] = 90.1 }, false},
		{"longitude out of range", func(b map[string]any) { b["longitude"] = -180.5 }, false},
		{"latitude wrong type", func(b map[string]any) { b["latitude"] = "40.0" }, false},
		{"text wrong type", func(b map[string]any) { b["text"] = 7 }, false},
		{"text over ceiling", func(b map[string]any) { b["text"] = strings.Repeat("a", 10001) }, false},
		{"empty text allowed", func(b map[string]any) { b["text"] = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			tt.mod(body)
			assert.Equal(t, tt.want, v.Validate(gate.RouteUploadLocal, body))
		})
	}
}

func TestValidateUUIDFields(t *testing.T) {
	v := validation.New()

	assert.True(t, v.Validate(gate.RouteGetReply, map[string]any{"threadID": uuid.NewString()}))
	assert.False(t, v.Validate(gate.RouteGetReply, map[string]any{"threadID": "not-a-uuid"}))
	assert.False(t, v.Validate(gate.RouteGetReply, map[string]any{"threadID": 42}))

	assert.True(t, v.Validate(gate.RouteModBlock, map[string]any{"userID": uuid.NewString()}))
	assert.False(t, v.Validate(gate.RouteModBlock, map[string]any{"userID": ""}))
}

func TestValidateUnknownRoutePasses(t *testing.T) {
	v := validation.New()
	assert.True(t, v.Validate(gate.Route("no-such-route"), map[string]any{"anything": true}))
}

func TestValidateRoutesWithoutRulesPass(t *testing.T) {
	v := validation.New()
	assert.True(t, v.Validate(gate.RouteSecurityCreate, map[string]any{}))
	assert.True(t, v.Validate(gate.RouteGetLive, map[string]any{}))
}
