package schema

import (
	"slices"
)

// TypeName is a JSON Schema primitive type name as used by the type keyword.
type TypeName string

const (
	TypeNull    TypeName = "null"
	TypeBoolean TypeName = "boolean"
	TypeNumber  TypeName = "number"
	TypeInteger TypeName = "integer"
	TypeString  TypeName = "string"
	TypeArray   TypeName = "array"
	TypeObject  TypeName = "object"
)

var typeNames = []TypeName{TypeNull, TypeBoolean, TypeNumber, TypeInteger, TypeString, TypeArray, TypeObject}

// ValidTypeName reports whether s names a JSON Schema primitive type.
func ValidTypeName(s string) bool {
	return slices.Contains(typeNames, TypeName(s))
}

// Keyword is one constraint of a Node. The set of keywords is closed: only
// the types in this file implement it.
type Keyword interface {
	// Name returns the JSON keyword, e.g. "required".
	Name() string
	keyword()
}

// Type constrains the JSON kind of a value.
type Type struct {
	Types []TypeName
}

// Required lists property names that an object must contain.
type Required struct {
	Names []string
}

// MinLength is the lower bound on the length of a string, in code points.
type MinLength struct {
	Min int
}

// MaxLength is the upper bound on the length of a string, in code points.
type MaxLength struct {
	Max int
}

// Property is a single entry of the properties keyword.
type Property struct {
	Name   string
	Schema *Node
}

// Properties applies a schema to each named property present in an object.
// Props are kept in declaration order.
type Properties struct {
	Props []Property
}

// OneOf is satisfied when exactly one alternative validates the value.
type OneOf struct {
	Alternatives []*Node
}

// AnyOf is satisfied when at least one alternative validates the value.
type AnyOf struct {
	Alternatives []*Node
}

// AllOf is satisfied when every alternative validates the value.
type AllOf struct {
	Alternatives []*Node
}

func (Type) Name() string       { return "type" }
func (Required) Name() string   { return "required" }
func (MinLength) Name() string  { return "minLength" }
func (MaxLength) Name() string  { return "maxLength" }
func (Properties) Name() string { return "properties" }
func (OneOf) Name() string      { return "oneOf" }
func (AnyOf) Name() string      { return "anyOf" }
func (AllOf) Name() string      { return "allOf" }

func (Type) keyword()       {}
func (Required) keyword()   {}
func (MinLength) keyword()  {}
func (MaxLength) keyword()  {}
func (Properties) keyword() {}
func (OneOf) keyword()      {}
func (AnyOf) keyword()      {}
func (AllOf) keyword()      {}

// rank fixes the evaluation order of keywords at a node:
// type, required, length bounds, oneOf, anyOf, allOf, then properties.
// Error ordering in validation results depends on it.
func rank(k Keyword) int {
	switch k.(type) {
	case Type:
		return 0
	case Required:
		return 1
	case MinLength:
		return 2
	case MaxLength:
		return 3
	case OneOf:
		return 4
	case AnyOf:
		return 5
	case AllOf:
		return 6
	case Properties:
		return 7
	default:
		return 8
	}
}
