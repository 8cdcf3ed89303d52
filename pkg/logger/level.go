package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelSecurity sits between WARN and ERROR. It marks detected attack
// signatures so alerting pipelines can route them apart from ordinary warnings.
const LevelSecurity = slog.Level(6)

var levelNames = map[slog.Level]string{
	LevelSecurity: "SECURITY",
}

// ParseLevel maps a textual level ("debug", "info", "warn", "security",
// "error") to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "security":
		return LevelSecurity, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// replaceLevel renders custom levels by name instead of "WARN+2".
func replaceLevel(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && len(groups) == 0 {
			if lvl, ok := a.Value.Any().(slog.Level); ok {
				if name, found := levelNames[lvl]; found {
					a.Value = slog.StringValue(name)
				}
			}
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}
}
