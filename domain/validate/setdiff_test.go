package validate

import (
	"reflect"
	"sort"
	"testing"
)

// TestDiffKeySetsIdentical tests that identical key sets yield nothing
func TestDiffKeySetsIdentical(t *testing.T) {
	a := column("a", "C1", "C2", "C2", "C3")
	b := column("b", "C3", "C1", "C2")

	onlyInB, onlyInA, err := DiffKeySets(a, b, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onlyInB) != 0 || len(onlyInA) != 0 {
		t.Errorf("expected empty differences, got %v and %v", onlyInB, onlyInA)
	}
}

// TestDiffKeySetsBothDirections tests direction-split differences
func TestDiffKeySetsBothDirections(t *testing.T) {
	a := column("a", "C1", "C2", "")
	b := column("b", "C2", "C3")

	onlyInB, onlyInA, err := DiffKeySets(a, b, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(onlyInB)
	sort.Strings(onlyInA)
	if !reflect.DeepEqual(onlyInB, []string{"C3"}) {
		t.Errorf("onlyInB = %v, want [C3]", onlyInB)
	}
	if !reflect.DeepEqual(onlyInA, []string{"C1"}) {
		t.Errorf("onlyInA = %v, want [C1]", onlyInA)
	}
}

// TestDiffKeySetsSwapSymmetry tests diffKeySets(A,B) == swap(diffKeySets(B,A))
func TestDiffKeySetsSwapSymmetry(t *testing.T) {
	a := column("a", "C1", "C2", "C4")
	b := column("b", "C2", "C3")

	abOnlyInB, abOnlyInA, err := DiffKeySets(a, b, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	baOnlyInA, baOnlyInB, err := DiffKeySets(b, a, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Strings(abOnlyInB)
	sort.Strings(abOnlyInA)
	sort.Strings(baOnlyInA)
	sort.Strings(baOnlyInB)

	if !reflect.DeepEqual(abOnlyInB, baOnlyInA) || !reflect.DeepEqual(abOnlyInA, baOnlyInB) {
		t.Errorf("swap symmetry broken: (%v,%v) vs swapped (%v,%v)",
			abOnlyInB, abOnlyInA, baOnlyInA, baOnlyInB)
	}
}
