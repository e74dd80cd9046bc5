package engine

import (
	"github.com/andyballingall/json-schema-validator/internal/instance"
)

// Kind classifies a validation error.
type Kind int

const (
	TypeMismatch Kind = iota
	MissingProperty
	TooShort
	TooLong
	NotExactlyOneOf
	NotAnyOf
	NotAllOf
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case MissingProperty:
		return "MissingProperty"
	case TooShort:
		return "TooShort"
	case TooLong:
		return "TooLong"
	case NotExactlyOneOf:
		return "NotExactlyOneOf"
	case NotAnyOf:
		return "NotAnyOf"
	case NotAllOf:
		return "NotAllOf"
	default:
		return "Unknown"
	}
}

// Detail is the keyword-specific payload of an Error.
type Detail interface {
	detail()
}

// TypeDetail records the declared and the actual type of a value.
type TypeDetail struct {
	Expected []string
	Actual   string
}

// PropertyDetail names a missing property.
type PropertyDetail struct {
	Name string
}

// LengthDetail holds the bound a length check failed against.
type LengthDetail struct {
	Bound int
}

// Branch is the outcome of validating the instance against one alternative
// of a composition keyword.
type Branch struct {
	Alternative string
	Errors      []Error
}

// CompositionDetail describes a failed composition keyword. Branches holds
// the errors of every evaluated alternative, including those not surfaced in
// the result.
type CompositionDetail struct {
	Alternatives []string
	Matched      int
	Branches     []Branch
}

func (TypeDetail) detail()        {}
func (PropertyDetail) detail()    {}
func (LengthDetail) detail()      {}
func (CompositionDetail) detail() {}

// Error is a single validation finding: where in the instance it applies,
// what kind it is and the keyword payload needed to describe it.
type Error struct {
	Path    instance.Path
	Kind    Kind
	Keyword string
	Detail  Detail
}

// Message returns the rendered message body, without the path.
func (e Error) Message() string {
	return Message(e)
}

// Stack returns the path followed by the message body, e.g.
// `instance requires property "p2"`.
func (e Error) Stack() string {
	return Stack(e)
}

func (e Error) Error() string {
	return Stack(e)
}
