package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParsePassID tests pass ID parsing
func TestParsePassID(t *testing.T) {
	tests := []struct {
		input    string
		expected PassID
		hasError bool
	}{
		{"pass-123", PassID("pass-123"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, test := range tests {
		result, err := ParsePassID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestMalformedRowError tests error classification through wrapping
func TestMalformedRowError(t *testing.T) {
	err := NewMalformedRowError("metrics", 4, 2, 5)
	if !IsMalformedRowError(err) {
		t.Errorf("expected malformed row classification for %v", err)
	}
	if IsFetchError(err) {
		t.Errorf("malformed row should not classify as fetch error")
	}

	fetchErr := NewFetchError("metrics", ErrSheetNotFound)
	if !IsFetchError(fetchErr) {
		t.Errorf("expected fetch classification for %v", fetchErr)
	}
}
