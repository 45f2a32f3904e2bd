package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// PassID identifies a single validation pass
type PassID ID

// NewPassID creates a fresh pass identifier
func NewPassID() PassID {
	return PassID(NewID())
}

func (id PassID) String() string { return ID(id).String() }

// ParsePassID parses a string into PassID
func ParsePassID(s string) (PassID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("pass ID cannot be empty")
	}
	return PassID(s), nil
}
