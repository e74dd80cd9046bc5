package app

import "fmt"

// ValidationFailedError is returned when at least one document fails validation.
// The report has already been written by the time it is returned.
type ValidationFailedError struct {
	Failed int
	Total  int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%d of %d documents failed validation", e.Failed, e.Total)
}

type InvalidSelectorError struct {
	Selector string
	Wrapped  error
}

func (e *InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid --select expression '%s': %v", e.Selector, e.Wrapped)
}

func (e *InvalidSelectorError) Unwrap() error {
	return e.Wrapped
}

type NoSelectionError struct {
	Selector string
}

func (e *NoSelectionError) Error() string {
	return fmt.Sprintf("%s selects nothing", e.Selector)
}

type MissingInputsError struct{}

func (e *MissingInputsError) Error() string {
	return "no instance documents given"
}
