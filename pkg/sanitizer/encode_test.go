package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripnest/inputguard/pkg/sanitizer"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escapes script tags",
			input:    `<script>alert("xss")</script>`,
			expected: "&lt;script&gt;alert(&quot;xss&quot;)&lt;&#x2F;script&gt;",
		},
		{
			name:     "escapes all six characters",
			input:    `& < > " ' /`,
			expected: "&amp; &lt; &gt; &quot; &#x27; &#x2F;",
		},
		{
			name:     "re-encodes existing entities",
			input:    "&amp;",
			expected: "&amp;amp;",
		},
		{
			name:     "leaves other characters alone",
			input:    "Hôtel Paris, 3 nights @ €120",
			expected: "Hôtel Paris, 3 nights @ €120",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.EscapeHTML(tt.input))
		})
	}
}

func TestEscapeHTML_NoRawScript(t *testing.T) {
	t.Parallel()

	out := sanitizer.EscapeHTML(`<script>alert("xss")</script>`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&lt;&#x2F;script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestSanitizeSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "classic drop table payload",
			input:    "'; DROP TABLE users; --",
			expected: "DROP TABLE users",
		},
		{
			name:     "removes quotes and backslashes",
			input:    `O'Brien "the \ great"`,
			expected: "OBrien the  great",
		},
		{
			name:     "removes block comments",
			input:    "/* comment */ value",
			expected: "comment  value",
		},
		{
			name:     "strips double dash inside legitimate text",
			input:    "Smith -- Jones Ltd",
			expected: "Smith  Jones Ltd",
		},
		{
			name:     "markers joined by char removal are stripped",
			input:    "-'-",
			expected: "",
		},
		{
			name:     "markers joined by comment removal are stripped",
			input:    "/--*",
			expected: "",
		},
		{
			name:     "plain text untouched",
			input:    "  Grand Hotel  ",
			expected: "Grand Hotel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := sanitizer.SanitizeSQL(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.NotContains(t, result, "'")
			assert.NotContains(t, result, ";")
			assert.NotContains(t, result, "--")
		})
	}
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello World", sanitizer.StripTags("<p>Hello <b>World</b></p>"))
	assert.Equal(t, "alert(1)", sanitizer.StripTags("<script>alert(1)</script>"))
	assert.Equal(t, "a  d", sanitizer.StripTags("a <b c> d"))
	assert.Equal(t, "no tags", sanitizer.StripTags("no tags"))
}

func TestSanitizeUserInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips tags keeps text",
			input:    "<b>Hello</b> World",
			expected: "Hello World",
		},
		{
			name:     "script body becomes inert text",
			input:    "<script>alert(1)</script>",
			expected: "alert(1)",
		},
		{
			name:     "encodes remaining special characters",
			input:    `Tom & Jerry's "house"`,
			expected: "Tom &amp; Jerry&#x27;s &quot;house&quot;",
		},
		{
			name:     "encodes slashes and trims",
			input:    "  check-in 12/05  ",
			expected: "check-in 12&#x2F;05",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeUserInput(tt.input))
		})
	}
}
