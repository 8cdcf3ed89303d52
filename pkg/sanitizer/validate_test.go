package sanitizer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/inputguard/pkg/logger"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

func TestValidateAndSanitize(t *testing.T) {
	t.Parallel()

	s := sanitizer.New(sanitizer.WithLogger(logger.Discard()))

	tests := []struct {
		name     string
		input    string
		opts     []sanitizer.Option
		expected sanitizer.Result
	}{
		{
			name:     "plain text passes",
			input:    "Hello World",
			expected: sanitizer.Result{Valid: true, Sanitized: "Hello World", Errors: []string{}},
		},
		{
			name:     "script rejected as xss",
			input:    "<script>alert(1)</script>",
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Potential XSS attack detected"}},
		},
		{
			name:     "tautology rejected as sql",
			input:    "' OR '1'='1",
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Potential SQL injection detected"}},
		},
		{
			name:     "length checked first",
			input:    "<script>alert(1)</script>",
			opts:     []sanitizer.Option{sanitizer.WithMaxLength(5)},
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input exceeds maximum length of 5"}},
		},
		{
			name:     "length counted in runes",
			input:    "héllo",
			opts:     []sanitizer.Option{sanitizer.WithMaxLength(5)},
			expected: sanitizer.Result{Valid: true, Sanitized: "héllo", Errors: []string{}},
		},
		{
			name:     "email normalized",
			input:    "User@Example.COM",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextEmail)},
			expected: sanitizer.Result{Valid: true, Sanitized: "user@example.com", Errors: []string{}},
		},
		{
			name:     "malformed email fails sanitization",
			input:    "not-an-email",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextEmail)},
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input failed sanitization"}},
		},
		{
			name:     "javascript url caught by xss detector before url logic",
			input:    "javascript:alert(1)",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextURL)},
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Potential XSS attack detected"}},
		},
		{
			name:     "ftp url fails sanitization",
			input:    "ftp://files.example.com",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextURL)},
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input failed sanitization"}},
		},
		{
			name:     "https url kept",
			input:    "https://example.com/hotels",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextURL)},
			expected: sanitizer.Result{Valid: true, Sanitized: "https://example.com/hotels", Errors: []string{}},
		},
		{
			name:     "phone stripped",
			input:    "+1 (555) 123-4567",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextPhone)},
			expected: sanitizer.Result{Valid: true, Sanitized: "+15551234567", Errors: []string{}},
		},
		{
			name:     "phone without digits fails",
			input:    "call me",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextPhone)},
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input failed sanitization"}},
		},
		{
			name:     "filename cleaned",
			input:    "../../etc/passwd",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextFilename)},
			expected: sanitizer.Result{Valid: true, Sanitized: "etcpasswd", Errors: []string{}},
		},
		{
			name:     "sql context strips quotes",
			input:    "O'Brien",
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextSQL)},
			expected: sanitizer.Result{Valid: true, Sanitized: "OBrien", Errors: []string{}},
		},
		{
			name:     "json context canonicalizes",
			input:    `{ "rooms": 2 }`,
			opts:     []sanitizer.Option{sanitizer.WithType(sanitizer.ContextJSON)},
			expected: sanitizer.Result{Valid: true, Sanitized: `{"rooms":2}`, Errors: []string{}},
		},
		{
			name:     "allow html skips encoding in text context",
			input:    "<b>bold</b>",
			opts:     []sanitizer.Option{sanitizer.WithAllowHTML()},
			expected: sanitizer.Result{Valid: true, Sanitized: "<b>bold</b>", Errors: []string{}},
		},
		{
			name:     "allow html ignored for other contexts",
			input:    "<b>x</b>",
			opts:     []sanitizer.Option{sanitizer.WithAllowHTML(), sanitizer.WithType(sanitizer.ContextFilename)},
			expected: sanitizer.Result{Valid: true, Sanitized: "_b_x_b_", Errors: []string{}},
		},
		{
			name:     "xss check disabled",
			input:    "<script>alert(1)</script>",
			opts:     []sanitizer.Option{sanitizer.WithoutXSSCheck()},
			expected: sanitizer.Result{Valid: true, Sanitized: "alert(1)", Errors: []string{}},
		},
		{
			name:     "sql check disabled",
			input:    "SELECT name FROM hotels",
			opts:     []sanitizer.Option{sanitizer.WithoutSQLCheck()},
			expected: sanitizer.Result{Valid: true, Sanitized: "SELECT name FROM hotels", Errors: []string{}},
		},
		{
			name:     "whitespace only fails",
			input:    "   ",
			expected: sanitizer.Result{Valid: false, Sanitized: "", Errors: []string{"Input failed sanitization"}},
		},
		{
			name:     "empty input is valid",
			input:    "",
			expected: sanitizer.Result{Valid: true, Sanitized: "", Errors: []string{}},
		},
		{
			name:     "unknown context treated as text",
			input:    "<i>x</i>",
			opts:     []sanitizer.Option{sanitizer.WithType("postcode")},
			expected: sanitizer.Result{Valid: true, Sanitized: "x", Errors: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, s.ValidateAndSanitize(tt.input, tt.opts...))
		})
	}
}

func TestValidateAndSanitize_WithOptions(t *testing.T) {
	t.Parallel()

	s := sanitizer.New(sanitizer.WithLogger(logger.Discard()))
	off := false

	res := s.ValidateAndSanitize("SELECT * FROM rooms", sanitizer.WithOptions(sanitizer.Options{
		Type:     sanitizer.ContextText,
		CheckSQL: &off,
	}))
	require.True(t, res.Valid)
	assert.Equal(t, "SELECT * FROM rooms", res.Sanitized)

	res = s.ValidateAndSanitize("abcdef", sanitizer.WithOptions(sanitizer.Options{MaxLength: 3}))
	assert.False(t, res.Valid)
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	s := sanitizer.New(sanitizer.WithLogger(logger.Discard()))

	tests := []struct {
		name   string
		input  string
		opts   []sanitizer.Option
		target error
	}{
		{name: "too long", input: "abcdef", opts: []sanitizer.Option{sanitizer.WithMaxLength(2)}, target: sanitizer.ErrInputTooLong},
		{name: "xss", input: "<iframe>", target: sanitizer.ErrXSSDetected},
		{name: "sql", input: "DROP TABLE x", target: sanitizer.ErrSQLInjectionDetected},
		{name: "typed rejection", input: "nope", opts: []sanitizer.Option{sanitizer.WithType(sanitizer.ContextEmail)}, target: sanitizer.ErrSanitizationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := s.ValidateAndSanitize(tt.input, tt.opts...)
			require.False(t, res.Valid)
			assert.True(t, errors.Is(res.Err(), tt.target))
		})
	}

	t.Run("valid result has no error", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, s.ValidateAndSanitize("fine").Err())
	})
}

func TestValidateAndSanitize_InvalidImpliesEmpty(t *testing.T) {
	t.Parallel()

	s := sanitizer.New(sanitizer.WithLogger(logger.Discard()))
	inputs := []string{"<script>", "' OR 1=1", "bad@", "   ", "x'; --"}
	for _, in := range inputs {
		res := s.ValidateAndSanitize(in, sanitizer.WithType(sanitizer.ContextEmail))
		if !res.Valid {
			assert.Empty(t, res.Sanitized, in)
			assert.NotEmpty(t, res.Errors, in)
		} else {
			assert.Empty(t, res.Errors, in)
		}
	}
}
