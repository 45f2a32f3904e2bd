package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural errors - these abort a validation pass
	ErrMalformedRow  = errors.New("malformed row")
	ErrSheetNotFound = errors.New("worksheet not found")
	ErrUpstreamFetch = errors.New("table fetch failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidLayout = errors.New("invalid sheet layout")
)

// Error constructors with context
func NewMalformedRowError(sheetName string, row, rowLen, col int) error {
	return fmt.Errorf("%w: sheet %q row %d has %d cells, column %d requested",
		ErrMalformedRow, sheetName, row, rowLen, col)
}

func NewFetchError(sheetName string, err error) error {
	return fmt.Errorf("%w: sheet %q: %v", ErrUpstreamFetch, sheetName, err)
}

func NewLayoutError(sheetName string, reason string) error {
	return fmt.Errorf("%w: sheet %q: %s", ErrInvalidLayout, sheetName, reason)
}

// Error checking helpers
func IsMalformedRowError(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}

func IsFetchError(err error) bool {
	return errors.Is(err, ErrUpstreamFetch) || errors.Is(err, ErrSheetNotFound)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrInvalidLayout)
}
