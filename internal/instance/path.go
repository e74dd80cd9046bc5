package instance

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// RootName is how the root of an instance is rendered in paths.
const RootName = "instance"

var (
	identifierRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)
	digitsRegex     = regexp.MustCompile(`^[0-9]+$`)
)

// Quote renders s as a JSON string literal without HTML escaping, so
// characters such as <, > and & appear as themselves.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Segment is one step of a Path: either a property name or an array index.
type Segment struct {
	name    string
	index   int
	isIndex bool
}

// Name returns the property name of the segment.
func (s Segment) Name() string {
	return s.name
}

// ArrayIndex returns the array index of the segment and whether it is one.
func (s Segment) ArrayIndex() (int, bool) {
	return s.index, s.isIndex
}

// Path locates a value within an instance, starting at the root.
// Paths are immutable: Property and Index return extended copies.
type Path struct {
	segs []Segment
}

// Root returns the path of the instance root.
func Root() Path {
	return Path{}
}

// Property returns p extended by a property name.
func (p Path) Property(name string) Path {
	return p.extend(Segment{name: name})
}

// Index returns p extended by an array index.
func (p Path) Index(i int) Path {
	return p.extend(Segment{index: i, isIndex: true})
}

func (p Path) extend(s Segment) Path {
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = s
	return Path{segs: segs}
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []Segment {
	cp := make([]Segment, len(p.segs))
	copy(cp, p.segs)
	return cp
}

// IsRoot reports whether p is the instance root.
func (p Path) IsRoot() bool {
	return len(p.segs) == 0
}

// String renders p in dotted/bracket form, e.g. instance.p2, instance[0]
// or instance["a b"]. All-digit property names render unquoted, like indices.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(RootName)
	for _, s := range p.segs {
		switch {
		case s.isIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		case identifierRegex.MatchString(s.name):
			b.WriteByte('.')
			b.WriteString(s.name)
		case digitsRegex.MatchString(s.name):
			b.WriteByte('[')
			b.WriteString(s.name)
			b.WriteByte(']')
		default:
			b.WriteByte('[')
			b.WriteString(Quote(s.name))
			b.WriteByte(']')
		}
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders p as an RFC 6901 JSON Pointer. The root is "".
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteByte('/')
		if s.isIndex {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		b.WriteString(pointerEscaper.Replace(s.name))
	}
	return b.String()
}
