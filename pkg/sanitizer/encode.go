package sanitizer

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

var (
	sqlCharStripper    = strings.NewReplacer("'", "", `"`, "", ";", "", `\`, "")
	sqlCommentStripper = strings.NewReplacer("--", "", "/*", "", "*/", "")
)

// EscapeHTML replaces & < > " ' / with their HTML entities. Existing entities
// are encoded again, so the function must be applied exactly once, at output.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SanitizeSQL strips quotes, semicolons, backslashes and SQL comment markers,
// then trims whitespace.
//
// This is a defense-in-depth heuristic and never a replacement for
// parameterized queries. "--" is removed anywhere in the input, including
// legitimate text such as "Smith -- Jones Ltd"; that loss is intentional.
func SanitizeSQL(s string) string {
	s = sqlCharStripper.Replace(s)
	// Removing one marker can join two halves into a new one ("-/**/-").
	for {
		stripped := sqlCommentStripper.Replace(s)
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.TrimSpace(s)
}

// StripTags removes every <...> tag while keeping the text between tags.
// Script bodies are kept as text: "<script>alert(1)</script>" becomes "alert(1)".
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}
