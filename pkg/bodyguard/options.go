package bodyguard

import (
	"log/slog"
	"net/http"

	"github.com/tripnest/inputguard/pkg/sanitizer"
)

// DefaultMaxBodySize is the body limit when WithMaxBodySize is not given.
const DefaultMaxBodySize int64 = 1 << 20

type options struct {
	maxBodySize int64
	allowed     []string
	allowedFunc func(*http.Request) []string
	policy      *sanitizer.Policy
	sanitizer   *sanitizer.Sanitizer
	log         *slog.Logger
	onError     ErrorHandler
}

// ErrorHandler writes the response for a rejected body. err matches one of
// ErrBodyTooLarge, ErrMalformedJSON, ErrNotObject, or is a
// sanitizer.FieldErrors for policy violations.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the middleware.
type Option func(*options)

// WithMaxBodySize caps the number of body bytes read. Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithAllowedFields keeps only the named top-level fields. Without it every
// field is kept; with an empty list none is.
func WithAllowedFields(fields ...string) Option {
	return func(o *options) {
		o.allowed = append([]string{}, fields...)
	}
}

// WithAllowedFieldsFunc resolves the allowlist per request, e.g. from a
// query parameter. It takes precedence over WithAllowedFields; a nil result
// keeps every field.
func WithAllowedFieldsFunc(fn func(*http.Request) []string) Option {
	return func(o *options) { o.allowedFunc = fn }
}

// WithPolicy validates bodies against p instead of the allowlist. Bodies
// failing the policy are rejected with 422 and the per-field messages.
func WithPolicy(p *sanitizer.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithSanitizer sets the engine instance. Defaults to sanitizer.Default().
func WithSanitizer(s *sanitizer.Sanitizer) Option {
	return func(o *options) { o.sanitizer = s }
}

// WithLogger sets the logger for rejected bodies and for the sanitizer's
// security events. Records carry the request id.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithErrorHandler replaces the default JSON error writer. Nil is ignored.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onError = h
		}
	}
}
