package instance

import (
	"fmt"
)

type InvalidJSONError struct {
	Source string
}

func (e *InvalidJSONError) Error() string {
	if e.Source == "" {
		return "instance is not valid JSON"
	}
	return fmt.Sprintf("%s is not valid JSON", e.Source)
}

type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot convert a value of Go type %s to a JSON value", e.Type)
}
