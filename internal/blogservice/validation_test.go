package blogservice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentEmpty(t *testing.T) {
	testCases := []struct {
		content string
		empty   bool
	}{
		{content: "", empty: true},
		{content: "null", empty: true},
		{content: "{}", empty: true},
		{content: "[]", empty: true},
		{content: `""`, empty: true},
		{content: `{"blocks": []}`, empty: true},
		{content: `[{"blocks": []}]`, empty: true},
		{content: `{"blocks": "nope"}`, empty: true},
		{content: `not json`, empty: true},
		{content: `{"blocks": [{"type": "paragraph"}]}`, empty: false},
		{content: `[{"time": 1, "blocks": [{"type": "header"}]}]`, empty: false},
		{content: `"plain text"`, empty: false},
	}

	for _, tc := range testCases {
		t.Run(tc.content, func(t *testing.T) {
			assert.Equal(t, tc.empty, contentEmpty(json.RawMessage(tc.content)))
		})
	}
}
