package validate

import (
	"slices"
	"sort"

	"sheetcheck/domain/sheet"
)

// Extractor derives the dependent value of a row: typically the target
// list of one column, optionally restricted to syntactically valid
// entries. A raw single cell is a one-element list.
type Extractor func(t sheet.Table, rowIdx int) ([]string, error)

// ColumnExtractor builds an Extractor over the raw target list of col.
func ColumnExtractor(col int) Extractor {
	return func(t sheet.Table, rowIdx int) ([]string, error) {
		cell, err := t.Cell(rowIdx, col)
		if err != nil {
			return nil, err
		}
		return ExtractTargets(cell), nil
	}
}

// CrossValidate groups rows by the concept key at keyCol and checks that
// the extracted dependent value is list-equal across all rows sharing the
// key. The first sighting of a key records its value and row; the first
// divergence appends the recorded pair once, and every divergence appends
// the divergent pair. Keys with no divergence are omitted. Each dependent
// column is validated by its own invocation.
func CrossValidate(t sheet.Table, keyCol int, extract Extractor) ([]Finding, error) {
	type firstSeen struct {
		values []string
		row    int
	}
	seen := make(map[string]firstSeen)
	mismatches := make(map[string][]Detail)

	for i := range t.Rows {
		key, err := t.Cell(i, keyCol)
		if err != nil {
			return nil, err
		}
		values, err := extract(t, i)
		if err != nil {
			return nil, err
		}
		first, ok := seen[key]
		if !ok {
			seen[key] = firstSeen{values: values, row: i + 1}
			continue
		}
		if slices.Equal(values, first.values) {
			continue
		}
		if _, diverged := mismatches[key]; !diverged {
			mismatches[key] = append(mismatches[key], Detail{Values: first.values, Row: first.row})
		}
		mismatches[key] = append(mismatches[key], Detail{Values: values, Row: i + 1})
	}

	keys := make([]string, 0, len(mismatches))
	for key := range mismatches {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	findings := make([]Finding, 0, len(keys))
	for _, key := range keys {
		findings = append(findings, Finding{Key: key, Details: mismatches[key]})
	}
	return findings, nil
}
