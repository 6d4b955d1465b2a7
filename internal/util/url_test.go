package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeReturnTo(t *testing.T) {
	tests := []struct {
		name     string
		returnTo string
		want     bool
	}{
		{"Root path", "/", true},
		{"Nested path", "/bonsai/123/edit", true},
		{"Path with query", "/users/kazu?tab=likes", true},
		{"Empty", "", false},
		{"Absolute URL", "https://evil.example/", false},
		{"Protocol relative", "//evil.example", false},
		{"Backslash variant", "/\\evil.example", false},
		{"Javascript scheme", "javascript:alert(1)", false},
		{"Header injection", "/ok\r\nSet-Cookie: x=y", false},
		{"Relative without slash", "bonsai/1", false},
		{"Too long", "/" + strings.Repeat("a", maxReturnToLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeReturnTo(tt.returnTo))
		})
	}
}

func TestSanitizeReturnTo(t *testing.T) {
	assert.Equal(t, "/bonsai", SanitizeReturnTo("/bonsai", "/"))
	assert.Equal(t, "/", SanitizeReturnTo("https://evil.example", "/"))
}
