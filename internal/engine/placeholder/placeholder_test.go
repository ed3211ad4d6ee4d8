// internal/engine/placeholder/placeholder_test.go
package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlaceholder_KnownTokens(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"na", "na"},
		{"NA uppercase", "NA"},
		{"n/a", "N/A"},
		{"tbd", "tbd"},
		{"TBD with whitespace", "  TBD  "},
		{"pending", "Pending"},
		{"negotiable", "Negotiable"},
		{"flexible", "flexible"},
		{"open", "Open"},
		{"competitive", "COMPETITIVE"},
		{"dash", "-"},
		{"nil", "nil"},
		{"null", "null"},
		{"none", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsPlaceholder(tt.value), "expected %q to be a placeholder", tt.value)
		})
	}
}

func TestIsPlaceholder_PhraseRules(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"as per company norms", "As per company norms"},
		{"as per standards", "as per industry standards"},
		{"to be decided", "To be decided"},
		{"to be discussed", "to be discussed"},
		{"depends on role", "Depends on the role"},
		{"best in industry", "Best in industry"},
		{"will share", "will share"},
		{"will share later", "Will share later"},
		{"will discuss on call", "will discuss on call"},
		{"will let you know and confirm", "will confirm by monday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsPlaceholder(tt.value), "expected %q to be a placeholder", tt.value)
		})
	}
}

func TestIsPlaceholder_InformativeValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"email", "john.doe@example.com"},
		{"name", "John Doe"},
		{"phone", "9876543210"},
		{"position", "Software Engineer"},
		{"compensation", "6.5 LPA"},
		{"city", "Bangalore"},
		{"notice", "30 days"},
		{"willingness is not a non-answer", "willing to relocate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsPlaceholder(tt.value), "expected %q to be informative", tt.value)
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "", Clean("  NA  "))
	assert.Equal(t, "", Clean("will share later"))
	assert.Equal(t, "John Doe", Clean("  John Doe  "))
}
