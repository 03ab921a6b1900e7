package mqxliff

import "fmt"

// ParseError represents a document that could not be read or parsed.
// It is fatal: no mutation may happen after it.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SaveError represents a failed save. In-memory mutations are retained so
// the caller may retry with a different path.
type SaveError struct {
	Path  string
	Cause error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Path, e.Cause)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}

// MutationError represents a unit that could not be mutated, typically
// because it has no target element. The document is left untouched.
type MutationError struct {
	UnitID  string
	Message string
}

func (e *MutationError) Error() string {
	if e.UnitID != "" {
		return fmt.Sprintf("mutation failed in unit %s: %s", e.UnitID, e.Message)
	}
	return fmt.Sprintf("mutation failed: %s", e.Message)
}
