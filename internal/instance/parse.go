package instance

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/tidwall/gjson"
)

// Parse parses JSON text into a Value, keeping object members in document order.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, &InvalidJSONError{}
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// ParseFile reads and parses the JSON document at path.
func ParseFile(path string) (Value, error) {
	//nolint:gosec // Path is supplied by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, err
	}
	if !gjson.ValidBytes(data) {
		return Value{}, &InvalidJSONError{Source: path}
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// FromResult converts a gjson result into a Value.
func FromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, v gjson.Result) bool {
				items = append(items, FromResult(v))
				return true
			})
			return Value{kind: KindArray, items: items}
		}
		var members []Member
		r.ForEach(func(k, v gjson.Result) bool {
			members = append(members, Member{Name: k.Str, Value: FromResult(v)})
			return true
		})
		return Object(members...)
	}
	return Null()
}

// FromAny converts the generic output of encoding/json into a Value.
// Object members are sorted by name, since Go maps carry no order.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			iv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = iv
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		slices.Sort(names)
		members := make([]Member, len(names))
		for i, name := range names {
			mv, err := FromAny(t[name])
			if err != nil {
				return Value{}, err
			}
			members[i] = Member{Name: name, Value: mv}
		}
		return Object(members...), nil
	default:
		return Value{}, &UnsupportedTypeError{Type: fmt.Sprintf("%T", v)}
	}
}

// MustFromAny is like FromAny but panics on error. It is intended for
// literals in tests and examples.
func MustFromAny(v any) Value {
	iv, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return iv
}
