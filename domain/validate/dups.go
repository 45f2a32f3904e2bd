package validate

import (
	"sort"
	"strings"

	"sheetcheck/domain/sheet"
)

// dupKey derives the grouping key for a cell: the first whitespace token
// with one trailing "." stripped, so "3." and "3" collapse to "3".
// Cells with no token yield no key.
func dupKey(cell string) (string, bool) {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return "", false
	}
	return strings.TrimSuffix(fields[0], "."), true
}

// FindDuplicates groups rows by the normalized key of the cell at col and
// reports every key whose rows carry more than one distinct full value.
// For each key, the first row of each distinct value is recorded; exact
// repeats of an already-seen value are not re-recorded. Row numbers are
// 1-based within the given table; callers add back any title-row offset
// for display. A row too short to carry col is a structural error.
func FindDuplicates(t sheet.Table, col int) ([]Finding, error) {
	seen := make(map[string]map[string]bool)
	firsts := make(map[string][]Detail)

	for i := range t.Rows {
		cell, err := t.Cell(i, col)
		if err != nil {
			return nil, err
		}
		key, ok := dupKey(cell)
		if !ok {
			continue
		}
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
		}
		if !seen[key][cell] {
			seen[key][cell] = true
			firsts[key] = append(firsts[key], Detail{Value: cell, Row: i + 1})
		}
	}

	keys := make([]string, 0, len(firsts))
	for key, details := range firsts {
		if len(details) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	findings := make([]Finding, 0, len(keys))
	for _, key := range keys {
		findings = append(findings, Finding{Key: key, Details: firsts[key]})
	}
	return findings, nil
}
