package sanitizer

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/microcosm-cc/bluemonday"

	"github.com/tripnest/inputguard/pkg/logger"
)

// canonicalJSON keeps numbers verbatim, sorts object keys and leaves <, > and &
// unescaped so the output matches what was submitted, minus whitespace.
var canonicalJSON = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

var richTextPolicy = bluemonday.UGCPolicy()

var errEmptyJSON = errors.New("empty json document")

// SanitizeEmail lowercases and trims email, then requires the local@domain.tld
// shape. Invalid addresses yield "" and a warning.
func (s *Sanitizer) SanitizeEmail(email string) string {
	normalized := strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(normalized) {
		s.warn("invalid email format", logger.Component("sanitizer"),
			// Encoded so the raw value cannot forge log lines or markup in log viewers.
			logger.Truncated("email", EscapeHTML(email)))
		return ""
	}
	return normalized
}

// SanitizeURL accepts only http, https and mailto URLs. Dangerous schemes
// (javascript:, data:, vbscript:, file:, about:) are logged as security events;
// any other scheme is logged as a warning. Rejected URLs yield "".
func (s *Sanitizer) SanitizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	lower := strings.ToLower(trimmed)

	for _, scheme := range deniedURLSchemes {
		if strings.HasPrefix(lower, scheme) {
			s.security(DetectorURLScheme, scheme, "dangerous url scheme detected",
				logger.Component("sanitizer"), logger.Truncated("url", EscapeHTML(trimmed)))
			return ""
		}
	}

	if !allowedURLScheme.MatchString(trimmed) {
		s.warn("invalid url scheme", logger.Component("sanitizer"),
			logger.Truncated("url", EscapeHTML(trimmed)))
		return ""
	}

	return trimmed
}

// SanitizeJSON re-serializes s in compact canonical form.
// Malformed JSON yields "" and a warning.
func (s *Sanitizer) SanitizeJSON(raw string) string {
	if strings.TrimSpace(raw) == "" {
		s.warn("invalid json input", logger.Component("sanitizer"), logger.Error(errEmptyJSON))
		return ""
	}

	var v any
	if err := canonicalJSON.UnmarshalFromString(raw, &v); err != nil {
		s.warn("invalid json input", logger.Component("sanitizer"), logger.Error(err))
		return ""
	}

	out, err := canonicalJSON.MarshalToString(v)
	if err != nil {
		s.warn("json re-serialization failed", logger.Component("sanitizer"), logger.Error(err))
		return ""
	}
	return out
}

// SanitizePhone keeps only ASCII digits and '+'.
func SanitizePhone(phone string) string {
	return nonPhoneRegex.ReplaceAllString(phone, "")
}

// SanitizeFilename produces a single safe path component: traversal
// sequences, separators and NUL bytes are removed, every other character
// outside [A-Za-z0-9._-] becomes '_' and leading dots are dropped.
func SanitizeFilename(name string) string {
	// Traversal removal runs before separator removal and repeats, so inputs
	// like "....//" or "./." cannot reassemble into "..".
	for {
		cleaned := strings.ReplaceAll(name, "..", "")
		cleaned = strings.ReplaceAll(cleaned, "/", "")
		cleaned = strings.ReplaceAll(cleaned, `\`, "")
		cleaned = strings.ReplaceAll(cleaned, "\x00", "")
		if cleaned == name {
			break
		}
		name = cleaned
	}

	name = filenameUnsafeRe.ReplaceAllString(name, "_")
	return strings.TrimLeft(name, ".")
}

// SanitizeRichText keeps the markup allowed in user generated content
// (links, emphasis, lists, tables) and drops scripts, handlers and styles.
func SanitizeRichText(s string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(s))
}

// SanitizeEmail calls Default().SanitizeEmail.
func SanitizeEmail(email string) string { return Default().SanitizeEmail(email) }

// SanitizeURL calls Default().SanitizeURL.
func SanitizeURL(rawURL string) string { return Default().SanitizeURL(rawURL) }

// SanitizeJSON calls Default().SanitizeJSON.
func SanitizeJSON(raw string) string { return Default().SanitizeJSON(raw) }
