package validate

import (
	"sort"
	"strings"
	"unicode"
)

// ExtractTargets builds the sorted target list from a multi-line cell.
// Lines are trimmed; empty lines and lines starting with a letter or '?'
// (narrative or footnote text) are dropped. The remainder is sorted
// lexicographically so list equality is independent of entry order.
// Syntax is not checked here; see MatchesIdentifier.
func ExtractTargets(cell string) []string {
	targets := make([]string, 0, 4)
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first := []rune(line)[0]
		if unicode.IsLetter(first) || first == '?' {
			continue
		}
		targets = append(targets, line)
	}
	sort.Strings(targets)
	return targets
}
