package sanitizer

import "errors"

var (
	// ErrInputTooLong is reported when input exceeds the configured maximum length.
	ErrInputTooLong = errors.New("input exceeds maximum length")

	// ErrXSSDetected is reported when input matches an XSS signature.
	ErrXSSDetected = errors.New("potential xss attack detected")

	// ErrSQLInjectionDetected is reported when input matches a SQL injection signature.
	ErrSQLInjectionDetected = errors.New("potential sql injection detected")

	// ErrSanitizationFailed is reported when a typed sanitizer rejects the input.
	ErrSanitizationFailed = errors.New("input failed sanitization")

	// ErrInvalidPolicy is returned when a field policy cannot be loaded or is malformed.
	ErrInvalidPolicy = errors.New("invalid sanitization policy")

	// ErrPolicyViolation is matched by FieldErrors returned from policy application.
	ErrPolicyViolation = errors.New("request body violates sanitization policy")
)
