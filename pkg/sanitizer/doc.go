// Package sanitizer defends request handlers against cross-site scripting and
// SQL injection by encoding, normalising and classifying untrusted input
// before it reaches storage, display or query construction.
//
// The package is layered, each layer depending only on the ones above it:
//
//   - Encoders – EscapeHTML, SanitizeSQL, StripTags.
//   - Typed sanitizers – SanitizeEmail, SanitizeURL, SanitizePhone,
//     SanitizeFilename, SanitizeJSON, SanitizeRichText, and the plain-text
//     default SanitizeUserInput.
//   - Detectors – ContainsXSS and ContainsSQLInjection, regular-expression
//     heuristics that report and log known attack signatures.
//   - SanitizeObject – recursive walker over decoded JSON with a depth guard.
//   - ValidateAndSanitize – the single-pass orchestrator returning a Result.
//   - SanitizeRequestBody – SanitizeObject plus a field allowlist.
//   - Policy – per-field rules loaded from YAML.
//
// # Usage
//
//	res := sanitizer.ValidateAndSanitize(raw,
//	    sanitizer.WithType(sanitizer.ContextEmail),
//	    sanitizer.WithMaxLength(254),
//	)
//	if !res.Valid {
//	    return res.Err()
//	}
//
//	body = sanitizer.SanitizeRequestBody(body, []string{"name", "email", "checkIn"})
//
// # Logging
//
// Format failures are logged at WARN, detected signatures at
// logger.LevelSecurity. Package-level functions use the Default sanitizer,
// which logs through slog.Default until SetDefault installs one built with
// New(WithLogger(...)). Untrusted values are truncated and HTML-encoded
// before they are written to the log.
//
// # Error handling
//
// Nothing here panics or returns an error for bad input. Typed sanitizers
// return "" on rejection, detectors return false, ValidateAndSanitize
// returns an invalid Result whose Err method maps to the package sentinels.
//
// # Caveats
//
// The SQL stripper and both detectors are blocklists. They produce false
// positives ("Select a room from the list" trips the SQL detector) and
// miss obfuscated payloads. Parameterized queries and output encoding
// remain the primary defenses.
//
// All functions are safe for concurrent use.
package sanitizer
