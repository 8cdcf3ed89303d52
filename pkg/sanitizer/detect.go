package sanitizer

import (
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/tripnest/inputguard/pkg/logger"
)

// ContainsXSS reports whether s matches a known XSS signature: script,
// iframe, embed and object openers, the javascript: scheme, inline event
// handlers and eval/expression calls. Matches are logged as security events.
//
// The check is a heuristic and will miss obfuscated payloads. Pair it with
// context-appropriate encoding (EscapeHTML, SanitizeUserInput).
func (s *Sanitizer) ContainsXSS(input string) bool {
	return s.detect(DetectorXSS, "xss pattern detected", xssPatterns, input)
}

// ContainsSQLInjection reports whether s matches a SQL injection signature:
// keyword pairs such as UNION..SELECT or DROP..TABLE, comment tokens,
// boolean OR/AND comparisons, quote-terminated statements and xp_/sp_
// procedure prefixes. Matches are logged as security events.
//
// Parameterized queries are the real defense; this detector exists for
// classification and alerting.
func (s *Sanitizer) ContainsSQLInjection(input string) bool {
	return s.detect(DetectorSQL, "sql injection pattern detected", sqlPatterns, input)
}

func (s *Sanitizer) detect(detector, msg string, patterns []*regexp.Regexp, input string) bool {
	candidates := []string{input}
	// Full-width and compatibility forms ("＜script") fold to ASCII under NFKC.
	if folded := norm.NFKC.String(input); folded != input {
		candidates = append(candidates, folded)
	}

	for _, re := range patterns {
		for _, c := range candidates {
			if re.MatchString(c) {
				s.security(detector, re.String(), msg,
					logger.Component("sanitizer"), logger.Input(input))
				return true
			}
		}
	}
	return false
}

// ContainsXSS calls Default().ContainsXSS.
func ContainsXSS(input string) bool { return Default().ContainsXSS(input) }

// ContainsSQLInjection calls Default().ContainsSQLInjection.
func ContainsSQLInjection(input string) bool { return Default().ContainsSQLInjection(input) }
