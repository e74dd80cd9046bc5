package engine

import (
	"fmt"
)

type InvalidBranchModeError struct {
	Value string
}

func (e *InvalidBranchModeError) Error() string {
	return fmt.Sprintf("invalid branch error mode: %s - must be 'suppress' or 'flatten'", e.Value)
}
