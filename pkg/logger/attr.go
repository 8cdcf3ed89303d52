package logger

import (
	"log/slog"
	"strconv"
)

// maxInputAttrLen bounds how much of an untrusted value ends up in log records.
const maxInputAttrLen = 100

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Input records an untrusted input under the key "input", truncated to the
// first 100 runes so attack payloads cannot flood the log pipeline.
func Input(s string) slog.Attr {
	return Truncated("input", s)
}

// Truncated records an untrusted value under key, cut to the first 100 runes.
func Truncated(key, s string) slog.Attr {
	return slog.String(key, Truncate(s, maxInputAttrLen))
}

// Pattern records the signature that matched under the key "pattern".
func Pattern(p string) slog.Attr {
	return slog.String("pattern", p)
}

// Detector records which detector fired under the key "detector".
func Detector(name string) slog.Attr {
	return slog.String("detector", name)
}

// Depth records a nesting depth under the key "depth".
func Depth(d int) slog.Attr {
	return slog.Int("depth", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
