package engine

import (
	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

func checkType(k schema.Type, v instance.Value, path instance.Path) []Error {
	expected := make([]string, len(k.Types))
	for i, t := range k.Types {
		if matchesType(t, v) {
			return nil
		}
		expected[i] = string(t)
	}
	return []Error{{
		Path:    path,
		Kind:    TypeMismatch,
		Keyword: k.Name(),
		Detail:  TypeDetail{Expected: expected, Actual: v.Kind().String()},
	}}
}

func matchesType(t schema.TypeName, v instance.Value) bool {
	switch t {
	case schema.TypeNull:
		return v.Kind() == instance.KindNull
	case schema.TypeBoolean:
		return v.Kind() == instance.KindBool
	case schema.TypeNumber:
		return v.Kind() == instance.KindNumber
	case schema.TypeInteger:
		return v.IsInteger()
	case schema.TypeString:
		return v.Kind() == instance.KindString
	case schema.TypeArray:
		return v.Kind() == instance.KindArray
	case schema.TypeObject:
		return v.Kind() == instance.KindObject
	}
	return false
}

// checkRequired reports one error per missing name, in list order.
// Non-objects are not constrained.
func checkRequired(k schema.Required, v instance.Value, path instance.Path) []Error {
	if v.Kind() != instance.KindObject {
		return nil
	}
	var errs []Error
	for _, name := range k.Names {
		if !v.Has(name) {
			errs = append(errs, Error{
				Path:    path,
				Kind:    MissingProperty,
				Keyword: k.Name(),
				Detail:  PropertyDetail{Name: name},
			})
		}
	}
	return errs
}

func checkMinLength(k schema.MinLength, v instance.Value, path instance.Path) []Error {
	if v.Kind() != instance.KindString || v.Len() >= k.Min {
		return nil
	}
	return []Error{{Path: path, Kind: TooShort, Keyword: k.Name(), Detail: LengthDetail{Bound: k.Min}}}
}

func checkMaxLength(k schema.MaxLength, v instance.Value, path instance.Path) []Error {
	if v.Kind() != instance.KindString || v.Len() <= k.Max {
		return nil
	}
	return []Error{{Path: path, Kind: TooLong, Keyword: k.Name(), Detail: LengthDetail{Bound: k.Max}}}
}

// properties validates each declared property present in the object. The
// errors of one property are kept together, in declaration order.
func (v *Validator) properties(k schema.Properties, value instance.Value, path instance.Path, st *frame) []Error {
	if value.Kind() != instance.KindObject {
		return nil
	}
	var errs []Error
	for _, p := range k.Props {
		pv, ok := value.Get(p.Name)
		if !ok {
			continue
		}
		errs = append(errs, v.validate(pv, p.Schema, path.Property(p.Name), st)...)
	}
	return errs
}
