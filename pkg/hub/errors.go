package hub

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no row carries the requested ID
	ErrNotFound = errors.New("row not found")

	// ErrUnknownTab is matched by UnknownTabError
	ErrUnknownTab = errors.New("unknown tab")

	// ErrNoSpreadsheet is returned by stores that need a backing spreadsheet that does not exist yet
	ErrNoSpreadsheet = errors.New("spreadsheet not found")
)

// UnknownTabError names a tab that has no schema
type UnknownTabError struct {
	Tab string
}

func (e *UnknownTabError) Error() string {
	return fmt.Sprintf("unknown tab '%s'", e.Tab)
}

func (e *UnknownTabError) Unwrap() error {
	return ErrUnknownTab
}

// NotFound wraps ErrNotFound with the tab and ID that were looked up
func NotFound(tab, id string) error {
	return fmt.Errorf("row with ID %s not found in %s: %w", id, tab, ErrNotFound)
}

// ValidationError reports a record field that violates the schema vocabulary
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Message)
}
