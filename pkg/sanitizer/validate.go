package sanitizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context tells ValidateAndSanitize how the value will be used downstream.
type Context string

const (
	ContextText     Context = "text"
	ContextEmail    Context = "email"
	ContextURL      Context = "url"
	ContextPhone    Context = "phone"
	ContextFilename Context = "filename"
	ContextSQL      Context = "sql"
	ContextJSON     Context = "json"
	ContextRichText Context = "richtext"
)

// Messages reported in Result.Errors.
const (
	MsgXSSDetected        = "Potential XSS attack detected"
	MsgSQLDetected        = "Potential SQL injection detected"
	MsgSanitizationFailed = "Input failed sanitization"
	msgTooLongPrefix      = "Input exceeds maximum length of "
)

// Options is the serializable form of the validation options. The zero value
// means: plain text, no length limit, HTML encoded, both detectors enabled.
type Options struct {
	Type      Context `json:"type,omitempty" yaml:"type" validate:"omitempty,oneof=text email url phone filename sql json richtext"`
	MaxLength int     `json:"maxLength,omitempty" yaml:"max_length" validate:"gte=0"`
	AllowHTML bool    `json:"allowHtml,omitempty" yaml:"allow_html"`
	CheckXSS  *bool   `json:"checkXss,omitempty" yaml:"check_xss"`
	CheckSQL  *bool   `json:"checkSql,omitempty" yaml:"check_sql"`
}

func (o Options) xssEnabled() bool { return o.CheckXSS == nil || *o.CheckXSS }
func (o Options) sqlEnabled() bool { return o.CheckSQL == nil || *o.CheckSQL }

// Option configures ValidateAndSanitize.
type Option func(*Options)

// WithOptions replaces every option with o.
func WithOptions(o Options) Option {
	return func(dst *Options) { *dst = o }
}

// WithType selects the typed sanitizer. Unknown contexts are treated as text.
func WithType(c Context) Option {
	return func(o *Options) { o.Type = c }
}

// WithMaxLength rejects input longer than n runes. Zero disables the check.
func WithMaxLength(n int) Option {
	return func(o *Options) { o.MaxLength = n }
}

// WithAllowHTML skips tag stripping and encoding in the text context.
func WithAllowHTML() Option {
	return func(o *Options) { o.AllowHTML = true }
}

// WithoutXSSCheck disables the XSS detector.
func WithoutXSSCheck() Option {
	disabled := false
	return func(o *Options) { o.CheckXSS = &disabled }
}

// WithoutSQLCheck disables the SQL injection detector.
func WithoutSQLCheck() Option {
	disabled := false
	return func(o *Options) { o.CheckSQL = &disabled }
}

// Result is the outcome of ValidateAndSanitize. When Valid is false,
// Sanitized is empty and Errors holds at least one message.
type Result struct {
	Valid     bool     `json:"valid"`
	Sanitized string   `json:"sanitized"`
	Errors    []string `json:"errors"`
}

func valid(sanitized string) Result {
	return Result{Valid: true, Sanitized: sanitized, Errors: []string{}}
}

func invalid(msg string) Result {
	return Result{Valid: false, Sanitized: "", Errors: []string{msg}}
}

// Err converts the failure messages into errors matching the package
// sentinels with errors.Is. It returns nil for a valid result.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, msg := range r.Errors {
		switch {
		case strings.HasPrefix(msg, msgTooLongPrefix):
			errs = append(errs, fmt.Errorf("%w: %s", ErrInputTooLong, strings.TrimPrefix(msg, msgTooLongPrefix)))
		case msg == MsgXSSDetected:
			errs = append(errs, ErrXSSDetected)
		case msg == MsgSQLDetected:
			errs = append(errs, ErrSQLInjectionDetected)
		default:
			errs = append(errs, ErrSanitizationFailed)
		}
	}
	if len(errs) == 0 {
		return ErrSanitizationFailed
	}
	return errors.Join(errs...)
}

// ValidateAndSanitize runs a single pass over input:
//
//  1. length check (runes) when a max length is set
//  2. XSS detector, unless disabled
//  3. SQL injection detector, unless disabled
//  4. the typed sanitizer for the selected context
//  5. rejection when the typed sanitizer empties non-empty input
//
// Detectors run before type-specific normalization so that a payload
// disguised as, say, an email is caught before it is reshaped.
func (s *Sanitizer) ValidateAndSanitize(input string, opts ...Option) Result {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	if o.MaxLength > 0 && utf8.RuneCountInString(input) > o.MaxLength {
		return invalid(fmt.Sprintf("%s%d", msgTooLongPrefix, o.MaxLength))
	}
	if o.xssEnabled() && s.ContainsXSS(input) {
		return invalid(MsgXSSDetected)
	}
	if o.sqlEnabled() && s.ContainsSQLInjection(input) {
		return invalid(MsgSQLDetected)
	}

	sanitized := s.sanitizeTyped(input, o)
	if sanitized == "" && input != "" {
		return invalid(MsgSanitizationFailed)
	}
	return valid(sanitized)
}

func (s *Sanitizer) sanitizeTyped(input string, o Options) string {
	switch o.Type {
	case ContextEmail:
		return s.SanitizeEmail(input)
	case ContextURL:
		return s.SanitizeURL(input)
	case ContextPhone:
		return SanitizePhone(input)
	case ContextFilename:
		return SanitizeFilename(input)
	case ContextSQL:
		return SanitizeSQL(input)
	case ContextJSON:
		return s.SanitizeJSON(input)
	case ContextRichText:
		return SanitizeRichText(input)
	default:
		if o.AllowHTML {
			return input
		}
		return SanitizeUserInput(input)
	}
}

// ValidateAndSanitize calls Default().ValidateAndSanitize.
func ValidateAndSanitize(input string, opts ...Option) Result {
	return Default().ValidateAndSanitize(input, opts...)
}
