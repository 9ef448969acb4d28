package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes invalid characters",
			input:    `file<>:"/\|?*name.md`,
			expected: "filename.md",
		},
		{
			name:     "replaces newlines and tabs with spaces",
			input:    "my\nvocabulary\tlist.md",
			expected: "my vocabulary list.md",
		},
		{
			name:     "trims whitespace",
			input:    "  vocabulary.md  ",
			expected: "vocabulary.md",
		},
		{
			name:     "returns fallback for empty",
			input:    "",
			expected: "vocabulary.md",
		},
		{
			name:     "returns fallback for only special chars",
			input:    "<>:?*",
			expected: "vocabulary.md",
		},
		{
			name:     "truncates long names",
			input:    strings.Repeat("a", 250),
			expected: strings.Repeat("a", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input, "vocabulary.md"))
		})
	}
}
