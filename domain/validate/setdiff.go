package validate

import (
	"strings"

	"sheetcheck/domain/sheet"
)

// DiffKeySets compares the distinct key-column values of two tables and
// returns the symmetric difference split by direction: keys present in b
// but missing from a, then keys present in a but missing from b. Blank
// keys are ignored. No ordering guarantee; callers sort for display.
func DiffKeySets(a, b sheet.Table, keyCol int) (onlyInB, onlyInA []string, err error) {
	setA, err := keySet(a, keyCol)
	if err != nil {
		return nil, nil, err
	}
	setB, err := keySet(b, keyCol)
	if err != nil {
		return nil, nil, err
	}
	for key := range setB {
		if !setA[key] {
			onlyInB = append(onlyInB, key)
		}
	}
	for key := range setA {
		if !setB[key] {
			onlyInA = append(onlyInA, key)
		}
	}
	return onlyInB, onlyInA, nil
}

func keySet(t sheet.Table, col int) (map[string]bool, error) {
	keys, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		set[key] = true
	}
	return set, nil
}
