package validate

import (
	"sort"

	"sheetcheck/domain/sheet"
)

// AuditTargetSyntax extracts the target list of every row's cell at col
// and reports each entry that fails MatchesIdentifier, grouped by the
// offending token. Invalid syntax is a finding, not an error; only a row
// too short to carry col aborts.
func AuditTargetSyntax(t sheet.Table, col int) ([]Finding, error) {
	invalid := make(map[string][]Detail)

	for i := range t.Rows {
		cell, err := t.Cell(i, col)
		if err != nil {
			return nil, err
		}
		for _, token := range ExtractTargets(cell) {
			if MatchesIdentifier(token) {
				continue
			}
			invalid[token] = append(invalid[token], Detail{Value: token, Row: i + 1})
		}
	}

	tokens := make([]string, 0, len(invalid))
	for token := range invalid {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	findings := make([]Finding, 0, len(tokens))
	for _, token := range tokens {
		findings = append(findings, Finding{Key: token, Details: invalid[token]})
	}
	return findings, nil
}
