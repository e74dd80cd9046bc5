package schema

import (
	"fmt"
)

type InvalidJSONError struct {
	Path string
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("%s is not valid JSON", e.Path)
}

type InvalidJSONSchemaError struct {
	Path    string
	Wrapped error
}

func (e *InvalidJSONSchemaError) Error() string {
	return fmt.Sprintf("%s is not a valid JSON Schema: %s", e.Path, e.Wrapped)
}

func (e *InvalidJSONSchemaError) Unwrap() error {
	return e.Wrapped
}

type InvalidSchemaNodeError struct {
	Pointer string
}

func (e *InvalidSchemaNodeError) Error() string {
	return fmt.Sprintf("schema at '#%s' must be an object or true", e.Pointer)
}

type InvalidKeywordError struct {
	Pointer string
	Keyword string
	Reason  string
}

func (e *InvalidKeywordError) Error() string {
	return fmt.Sprintf("keyword %s at '#%s' is invalid: %s", e.Keyword, e.Pointer, e.Reason)
}

type UnsupportedRefError struct {
	Ref string
}

func (e *UnsupportedRefError) Error() string {
	return fmt.Sprintf("$ref %s is not supported - only references within the same document (e.g. '#/definitions/x') "+
		"can be resolved", e.Ref)
}

type UnresolvedRefError struct {
	Ref string
}

func (e *UnresolvedRefError) Error() string {
	return fmt.Sprintf("$ref %s does not point to anything in the document", e.Ref)
}

type RefCycleError struct {
	Ref string
}

func (e *RefCycleError) Error() string {
	return fmt.Sprintf("$ref %s only refers back to itself", e.Ref)
}
