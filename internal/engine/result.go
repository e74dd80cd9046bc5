package engine

import (
	"slices"
	"strings"
)

// Result is the outcome of a validation. Validity is derived from the error
// list and cannot be set independently of it.
type Result struct {
	errors []Error
}

func newResult(errs []Error) Result {
	if len(errs) == 0 {
		return Result{}
	}
	return Result{errors: errs}
}

// Valid reports whether no errors were found.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the errors in report order.
func (r Result) Errors() []Error {
	return slices.Clone(r.errors)
}

// Stacks returns the rendered form of every error, in report order.
func (r Result) Stacks() []string {
	stacks := make([]string, len(r.errors))
	for i, e := range r.errors {
		stacks[i] = e.Stack()
	}
	return stacks
}

// Err returns nil for a valid result, and a *FailedError otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &FailedError{Errors: r.Errors()}
}

// FailedError is returned by Result.Err for invalid results.
type FailedError struct {
	Errors []Error
}

func (e *FailedError) Error() string {
	stacks := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		stacks[i] = err.Stack()
	}
	return strings.Join(stacks, "\n")
}
