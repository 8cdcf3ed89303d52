package sanitizer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/tripnest/inputguard/pkg/logger"
)

// Detector names passed to DetectionHook.
const (
	DetectorXSS       = "xss"
	DetectorSQL       = "sql"
	DetectorURLScheme = "url_scheme"
)

// DetectionHook is called once for every detected attack signature.
// It runs synchronously on the caller's goroutine and must not block.
type DetectionHook func(detector, pattern string)

// Sanitizer binds the sanitization functions to a logger and an optional
// detection hook. The zero value is ready to use and logs through slog.Default.
// A Sanitizer holds no mutable state and is safe for concurrent use.
type Sanitizer struct {
	log      *slog.Logger
	onHook   DetectionHook
	maxDepth int
	depthSet bool
}

// SanitizerOption configures a Sanitizer.
type SanitizerOption func(*Sanitizer)

// WithLogger routes warnings and security events to l. Nil is ignored.
func WithLogger(l *slog.Logger) SanitizerOption {
	return func(s *Sanitizer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDetectionHook registers a callback for detected signatures, e.g. to feed metrics.
func WithDetectionHook(h DetectionHook) SanitizerOption {
	return func(s *Sanitizer) { s.onHook = h }
}

// WithDefaultMaxDepth sets the depth limit SanitizeObject and
// SanitizeRequestBody use when no WithMaxDepth is given. Negative values are ignored.
func WithDefaultMaxDepth(n int) SanitizerOption {
	return func(s *Sanitizer) {
		if n >= 0 {
			s.maxDepth, s.depthSet = n, true
		}
	}
}

func (s *Sanitizer) objectDefaults() objectOptions {
	if s != nil && s.depthSet {
		return objectOptions{maxDepth: s.maxDepth}
	}
	return objectOptions{maxDepth: DefaultMaxDepth}
}

// New creates a Sanitizer.
func New(opts ...SanitizerOption) *Sanitizer {
	s := &Sanitizer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger returns a copy of s that logs through l, keeping the detection hook.
// Useful to attach request-scoped attributes:
//
//	s := sanitizer.Default().WithLogger(log.With(logger.RequestID(id)))
func (s *Sanitizer) WithLogger(l *slog.Logger) *Sanitizer {
	cp := *s
	if l != nil {
		cp.log = l
	}
	return &cp
}

func (s *Sanitizer) logger() *slog.Logger {
	if s == nil || s.log == nil {
		return slog.Default()
	}
	return s.log
}

func (s *Sanitizer) warn(msg string, attrs ...slog.Attr) {
	s.logger().LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

func (s *Sanitizer) security(detector, pattern, msg string, attrs ...slog.Attr) {
	s.logger().LogAttrs(context.Background(), logger.LevelSecurity, msg,
		append(attrs, logger.Detector(detector), logger.Pattern(pattern))...)
	if s != nil && s.onHook != nil {
		s.onHook(detector, pattern)
	}
}

var defaultSanitizer atomic.Pointer[Sanitizer]

func init() {
	defaultSanitizer.Store(New())
}

// Default returns the Sanitizer used by the package-level functions.
func Default() *Sanitizer { return defaultSanitizer.Load() }

// SetDefault replaces the Sanitizer used by the package-level functions.
// Nil is ignored.
func SetDefault(s *Sanitizer) {
	if s != nil {
		defaultSanitizer.Store(s)
	}
}
