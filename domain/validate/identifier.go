package validate

import "regexp"

// Target identifiers look like "3.1", "12.11" or "7.a": one or two digits,
// a literal dot, then one or two digits or a single lowercase letter.
// Anchored on both ends; callers pre-trim.
var identifierPattern = regexp.MustCompile(`^[0-9]{1,2}\.([0-9]{1,2}|[a-z])$`)

// MatchesIdentifier reports whether token is a syntactically valid target
// identifier. Pure, no normalization.
func MatchesIdentifier(token string) bool {
	return identifierPattern.MatchString(token)
}
