// Package instance models the JSON documents that are checked against a schema.
//
// A Value is an immutable tagged union over the six JSON kinds. Values are
// built either from JSON text (Parse), from the generic output of
// encoding/json (FromAny) or directly with the constructors in this file.
package instance

import (
	"math"
	"unicode/utf8"
)

// Kind is the JSON kind of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON Schema type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single name/value pair of an object.
type Member struct {
	Name  string
	Value Value
}

// Value is an immutable JSON value. The zero Value is JSON null.
type Value struct {
	kind    Kind
	b       bool
	n       float64
	s       string
	items   []Value
	members []Member
	lookup  map[string]int
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a JSON number.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns a JSON array holding a copy of items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// Object returns a JSON object. Member order is kept; when a name repeats,
// the later value replaces the earlier one in place.
func Object(members ...Member) Value {
	cp := make([]Member, 0, len(members))
	lookup := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := lookup[m.Name]; ok {
			cp[i].Value = m.Value
			continue
		}
		lookup[m.Name] = len(cp)
		cp = append(cp, m)
	}
	return Value{kind: KindObject, members: cp, lookup: lookup}
}

// Kind returns the JSON kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. It is false for non-boolean values.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric payload. It is 0 for non-number values.
func (v Value) Number() float64 {
	return v.n
}

// Str returns the string payload. It is empty for non-string values.
func (v Value) Str() string {
	return v.s
}

// IsInteger reports whether v is a number without a fractional part.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber || math.IsInf(v.n, 0) || math.IsNaN(v.n) {
		return false
	}
	return v.n == math.Trunc(v.n)
}

// Len returns the length of v: code points for strings, elements for arrays
// and members for objects. Scalars have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return utf8.RuneCountInString(v.s)
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Get returns the member of an object with exactly the given name.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.lookup[name]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Has reports whether v is an object containing name.
func (v Value) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// Keys returns the member names of an object in document order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Name
	}
	return keys
}
