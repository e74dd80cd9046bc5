package engine

import (
	"strconv"
	"strings"

	"github.com/andyballingall/json-schema-validator/internal/instance"
)

// Message renders the message body of e. The formats are relied upon by
// consumers that match error output literally.
func Message(e Error) string {
	switch d := e.Detail.(type) {
	case PropertyDetail:
		return "requires property " + instance.Quote(d.Name)
	case LengthDetail:
		if e.Kind == TooLong {
			return "does not meet maximum property length of " + strconv.Itoa(d.Bound)
		}
		return "does not meet minimum property length of " + strconv.Itoa(d.Bound)
	case TypeDetail:
		return "is not of a type(s) " + strings.Join(d.Expected, ",")
	case CompositionDetail:
		return compositionMessage(e.Kind, d)
	}
	return "is invalid"
}

func compositionMessage(k Kind, d CompositionDetail) string {
	switch k {
	case NotAnyOf:
		return "is not any of " + strings.Join(d.Alternatives, ",")
	case NotAllOf:
		n := 0
		alt := ""
		if len(d.Branches) > 0 {
			n = len(d.Branches[0].Errors)
			alt = d.Branches[0].Alternative
		}
		return "does not match allOf schema " + alt + " with " + strconv.Itoa(n) + " error[s]"
	default:
		return "is not exactly one from " + strings.Join(d.Alternatives, ",")
	}
}

// Stack renders the path of e followed by its message body.
func Stack(e Error) string {
	return e.Path.String() + " " + Message(e)
}

// AlternativeName is how an alternative of a composition keyword is named in
// messages: its $id, else its JSON-quoted title, else its $ref, else its
// position.
func AlternativeName(id, title, ref string, index int) string {
	switch {
	case id != "":
		return "<" + id + ">"
	case title != "":
		return instance.Quote(title)
	case ref != "":
		return "<" + ref + ">"
	default:
		return "[subschema " + strconv.Itoa(index) + "]"
	}
}
