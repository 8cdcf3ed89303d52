package sanitizer

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"slices"

	"github.com/tripnest/inputguard/pkg/logger"
)

// DefaultMaxDepth bounds recursion in SanitizeObject unless the Sanitizer
// was built WithDefaultMaxDepth.
const DefaultMaxDepth = 10

type objectOptions struct {
	allowHTML bool
	maxDepth  int
}

// ObjectOption configures SanitizeObject.
type ObjectOption func(*objectOptions)

// WithObjectHTML leaves string values untouched. Keys are sanitized regardless.
func WithObjectHTML() ObjectOption {
	return func(o *objectOptions) { o.allowHTML = true }
}

// WithMaxDepth overrides DefaultMaxDepth. Negative values are ignored.
func WithMaxDepth(n int) ObjectOption {
	return func(o *objectOptions) {
		if n >= 0 {
			o.maxDepth = n
		}
	}
}

// SanitizeObject walks v and sanitizes every string in it with
// SanitizeUserInput. Map keys are always sanitized; string values are left
// alone with WithObjectHTML. Sequences keep order and length; nil, numbers
// and booleans are returned unchanged.
//
// Values nested deeper than the max depth (root is depth 0) are replaced by
// nil and a warning is logged; the rest of the value is still returned.
// Values of kinds that cannot carry request data (structs, funcs, channels)
// are also replaced by nil.
//
// Maps come back as map[string]any and sequences as []any. When two keys
// sanitize to the same string, the one that sorts last wins.
func (s *Sanitizer) SanitizeObject(v any, opts ...ObjectOption) any {
	o := s.objectDefaults()
	for _, opt := range opts {
		opt(&o)
	}
	return s.walk(v, o, 0)
}

func (s *Sanitizer) walk(v any, o objectOptions, depth int) any {
	if depth > o.maxDepth {
		s.warn("maximum object depth exceeded",
			logger.Component("sanitizer"), logger.Depth(depth), slog.Int("max_depth", o.maxDepth))
		return nil
	}

	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if o.allowHTML {
			return val
		}
		return SanitizeUserInput(val)
	case bool, json.Number,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = s.walk(elem, o, depth+1)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			out[SanitizeUserInput(k)] = s.walk(val[k], o, depth+1)
		}
		return out
	}

	return s.walkReflect(reflect.ValueOf(v), o, depth)
}

// walkReflect handles typed containers such as []string or map[string]int.
func (s *Sanitizer) walkReflect(rv reflect.Value, o objectOptions, depth int) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return s.walk(rv.Elem().Interface(), o, depth)
	case reflect.String:
		return s.walk(rv.String(), o, depth)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface()
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = s.walk(rv.Index(i).Interface(), o, depth+1)
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[SanitizeUserInput(k.String())] = s.walk(rv.MapIndex(k).Interface(), o, depth+1)
		}
		return out
	}

	s.warn("unsupported value type dropped",
		logger.Component("sanitizer"), slog.String("type", rv.Type().String()))
	return nil
}

// SanitizeObject calls Default().SanitizeObject.
func SanitizeObject(v any, opts ...ObjectOption) any { return Default().SanitizeObject(v, opts...) }
