package sanitizer

import "regexp"

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	allowedURLScheme = regexp.MustCompile(`(?i)^(https?://|mailto:)`)

	nonPhoneRegex    = regexp.MustCompile(`[^0-9+]`)
	filenameUnsafeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// xssPatterns are tested in order; the first match wins.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on(?:error|load|click|mouseover)\s*=`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)expression\s*\(`),
}

// sqlPatterns are tested in order; the first match wins.
var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)union.*select`),
	regexp.MustCompile(`(?i)select.*from`),
	regexp.MustCompile(`(?i)insert.*into`),
	regexp.MustCompile(`(?i)delete.*from`),
	regexp.MustCompile(`(?i)drop.*table`),
	regexp.MustCompile(`(?i)update.*set`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`#`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`(?i)\bor\b.*=`),
	regexp.MustCompile(`(?i)\band\b.*=`),
	regexp.MustCompile(`';`),
	regexp.MustCompile(`";`),
	regexp.MustCompile(`(?i)xp_`),
	regexp.MustCompile(`(?i)sp_`),
}

// deniedURLSchemes are rejected outright, before the allowlist check.
var deniedURLSchemes = []string{
	"javascript:",
	"data:",
	"vbscript:",
	"file:",
	"about:",
}
