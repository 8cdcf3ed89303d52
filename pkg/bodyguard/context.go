package bodyguard

import "context"

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// FromContext returns the sanitized body stored by the middleware.
func FromContext(ctx context.Context) (map[string]any, bool) {
	if ctx == nil {
		return nil, false
	}
	body, ok := ctx.Value(bodyKey{}).(map[string]any)
	return body, ok
}
