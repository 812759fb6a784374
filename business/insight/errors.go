package insight

import "fmt"

// ValidationError reports the snapshot field that violated an invariant.
// A snapshot that fails validation must not be evaluated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s: %s", e.Field, e.Reason)
}

// DataInsufficientError means a finding's evidence payload is missing a
// field the scoring formula needs. The finding is dropped; the request
// as a whole still succeeds.
type DataInsufficientError struct {
	Field string
}

func (e *DataInsufficientError) Error() string {
	return fmt.Sprintf("insufficient data: evidence missing %q", e.Field)
}
