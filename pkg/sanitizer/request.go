package sanitizer

// SanitizeRequestBody sanitizes every key and string value of body as plain
// text. When allowedFields is non-nil, only those keys are kept, which stops
// mass-assignment of fields the handler never asked for (isAdmin, password).
// An empty non-nil allowlist keeps nothing.
//
// Allowlisted names are matched against the sanitized keys.
func (s *Sanitizer) SanitizeRequestBody(body map[string]any, allowedFields []string) map[string]any {
	sanitized, _ := s.SanitizeObject(body).(map[string]any)
	if sanitized == nil {
		sanitized = map[string]any{}
	}
	if allowedFields == nil {
		return sanitized
	}

	filtered := make(map[string]any, len(allowedFields))
	for _, field := range allowedFields {
		if v, ok := sanitized[field]; ok {
			filtered[field] = v
		}
	}
	return filtered
}

// SanitizeRequestBody calls Default().SanitizeRequestBody.
func SanitizeRequestBody(body map[string]any, allowedFields []string) map[string]any {
	return Default().SanitizeRequestBody(body, allowedFields)
}
