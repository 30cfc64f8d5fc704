package analysis

import "fmt"

// InputOrderingError reports raw inputs that violate the ordering or
// uniqueness preconditions. It is deterministic for a given input and
// fatal for that ticker's run; retrying belongs to the fetch layer.
type InputOrderingError struct {
	Reason string
}

func (e *InputOrderingError) Error() string {
	return fmt.Sprintf("input ordering violation: %s", e.Reason)
}

// InsufficientDataError reports an empty price series. Partial data
// (short history, missing fundamentals) is not an error; only having
// nothing to analyze is.
type InsufficientDataError struct {
	Ticker string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: no price rows for %s", e.Ticker)
}
