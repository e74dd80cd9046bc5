package metaschema

import (
	"fmt"
)

type UnsupportedDraftError struct {
	Draft     Draft
	Supported []Draft
}

func (e *UnsupportedDraftError) Error() string {
	return fmt.Sprintf("unsupported JSON Schema draft '%s'. Supported versions are: %v", e.Draft, e.Supported)
}
