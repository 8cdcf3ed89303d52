package sanitizer

import "strings"

var plainText = Compose(StripTags, EscapeHTML, strings.TrimSpace)

// SanitizeUserInput is the default treatment for untyped strings: tags are
// stripped, the remainder is HTML-encoded and the result trimmed.
func SanitizeUserInput(s string) string {
	return plainText(s)
}
