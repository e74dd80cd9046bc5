package schema

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/andyballingall/json-schema-validator/internal/metaschema"
)

// metaCheckID is the resource URL a document is registered under for the
// metaschema check. The compiler is cleared before every check.
const metaCheckID = "http://jsv.invalid/schema.json"

// Loader builds Nodes from schema documents.
// A Loader is safe for concurrent use.
type Loader struct {
	mu       sync.Mutex
	compiler metaschema.Compiler
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMetaSchema makes the loader check every document against its draft
// metaschema with c before building nodes from it.
func WithMetaSchema(c metaschema.Compiler) LoaderOption {
	return func(l *Loader) {
		l.compiler = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader. Without options, documents are not checked
// against a metaschema and nothing is logged.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load is a convenience function which builds the root Node of a document
// with a default Loader.
func Load(data []byte) (*Node, error) {
	return NewLoader().Load("schema", data)
}

// LoadFile reads the schema document at path and builds its root Node.
func (l *Loader) LoadFile(path string) (*Node, error) {
	//nolint:gosec // Path is supplied by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(path, data)
}

// Load builds the root Node of the schema document in data. The source is
// only used to describe the document in errors and logs.
func (l *Loader) Load(source string, data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, &InvalidJSONError{Path: source}
	}

	if l.compiler != nil {
		if err := l.metaCheck(source, data); err != nil {
			return nil, err
		}
	}

	root := gjson.ParseBytes(data)
	b := &builder{
		root:  root,
		nodes: make(map[string]*Node),
	}
	if root.IsObject() {
		for _, key := range []string{"$id", "id"} {
			if id, ok := lookupMember(root, key); ok && id.Type == gjson.String && b.rootID == "" {
				b.rootID = strings.TrimSuffix(id.Str, "#")
			}
		}
	}

	n, err := b.build(root, "")
	if err != nil {
		return nil, err
	}
	for _, r := range b.refs {
		if r.Target() == nil {
			return nil, &RefCycleError{Ref: r.Ref}
		}
	}

	l.logger.Debug("schema loaded", "source", source, "nodes", len(b.nodes), "refs", len(b.refs))
	return n, nil
}

func (l *Loader) metaCheck(source string, data []byte) error {
	var doc metaschema.JSONSchema
	if err := json.Unmarshal(data, &doc); err != nil {
		return &InvalidJSONError{Path: source}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.compiler.Clear()
	if err := l.compiler.AddSchema(metaCheckID, doc); err != nil {
		return &InvalidJSONSchemaError{Path: source, Wrapped: err}
	}
	if err := l.compiler.Compile(metaCheckID); err != nil {
		return &InvalidJSONSchemaError{Path: source, Wrapped: err}
	}
	return nil
}

// builder turns one parsed document into Nodes. Nodes are cached by their
// JSON Pointer so that references and inline uses share a single Node.
type builder struct {
	root   gjson.Result
	rootID string
	nodes  map[string]*Node
	refs   []*Node
}

type member struct {
	name  string
	value gjson.Result
}

// members returns the members of an object in document order.
func members(r gjson.Result) []member {
	var ms []member
	r.ForEach(func(k, v gjson.Result) bool {
		ms = append(ms, member{name: k.Str, value: v})
		return true
	})
	return ms
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func (b *builder) build(r gjson.Result, ptr string) (*Node, error) {
	if n, ok := b.nodes[ptr]; ok {
		return n, nil
	}

	if r.Type == gjson.True {
		n := &Node{}
		b.nodes[ptr] = n
		return n, nil
	}
	if !r.IsObject() {
		return nil, &InvalidSchemaNodeError{Pointer: ptr}
	}

	// Register before descending so recursive references find this node.
	n := &Node{}
	b.nodes[ptr] = n

	ms := members(r)
	var ref *gjson.Result
	for i := range ms {
		m := ms[i]
		switch m.name {
		case "$id", "id":
			if m.value.Type == gjson.String && n.ID == "" {
				n.ID = m.value.Str
			}
		case "title":
			if m.value.Type == gjson.String {
				n.Title = m.value.Str
			}
		case "$ref":
			ref = &ms[i].value
		}
	}

	if ref != nil {
		if ref.Type != gjson.String {
			return nil, &InvalidKeywordError{Pointer: ptr, Keyword: "$ref", Reason: "must be a string"}
		}
		target, err := b.resolve(ref.Str)
		if err != nil {
			return nil, err
		}
		n.Ref = ref.Str
		n.target = target
		b.refs = append(b.refs, n)
		return n, nil
	}

	kws := make([]Keyword, 0, len(ms))
	for _, m := range ms {
		kw, err := b.keyword(m.name, m.value, ptr)
		if err != nil {
			return nil, err
		}
		if kw != nil {
			kws = append(kws, kw)
		}
	}
	n.setKeywords(kws)
	return n, nil
}

// keyword parses a single keyword. Unknown keywords return nil, nil.
func (b *builder) keyword(name string, v gjson.Result, ptr string) (Keyword, error) {
	kwPtr := ptr + "/" + pointerEscaper.Replace(name)
	invalid := func(reason string) error {
		return &InvalidKeywordError{Pointer: ptr, Keyword: name, Reason: reason}
	}

	switch name {
	case "type":
		return parseType(v, invalid)

	case "required":
		if !v.IsArray() {
			return nil, invalid("must be an array of property names")
		}
		var names []string
		for _, e := range v.Array() {
			if e.Type != gjson.String {
				return nil, invalid("must be an array of property names")
			}
			names = append(names, e.Str)
		}
		return Required{Names: names}, nil

	case "minLength", "maxLength":
		bound, ok := parseBound(v)
		if !ok {
			return nil, invalid("must be a non-negative integer")
		}
		if name == "minLength" {
			return MinLength{Min: bound}, nil
		}
		return MaxLength{Max: bound}, nil

	case "properties":
		if !v.IsObject() {
			return nil, invalid("must be an object of schemas")
		}
		var props []Property
		for _, m := range members(v) {
			sub, err := b.build(m.value, kwPtr+"/"+pointerEscaper.Replace(m.name))
			if err != nil {
				return nil, err
			}
			props = append(props, Property{Name: m.name, Schema: sub})
		}
		return Properties{Props: props}, nil

	case "oneOf", "anyOf", "allOf":
		if !v.IsArray() || len(v.Array()) == 0 {
			return nil, invalid("must be a non-empty array of schemas")
		}
		var alts []*Node
		for i, e := range v.Array() {
			sub, err := b.build(e, kwPtr+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			alts = append(alts, sub)
		}
		switch name {
		case "oneOf":
			return OneOf{Alternatives: alts}, nil
		case "anyOf":
			return AnyOf{Alternatives: alts}, nil
		default:
			return AllOf{Alternatives: alts}, nil
		}
	}

	return nil, nil
}

func parseType(v gjson.Result, invalid func(string) error) (Keyword, error) {
	if v.Type == gjson.String {
		if !ValidTypeName(v.Str) {
			return nil, invalid("unknown type " + strconv.Quote(v.Str))
		}
		return Type{Types: []TypeName{TypeName(v.Str)}}, nil
	}
	if !v.IsArray() || len(v.Array()) == 0 {
		return nil, invalid("must be a type name or a non-empty array of type names")
	}
	var types []TypeName
	for _, e := range v.Array() {
		if e.Type != gjson.String || !ValidTypeName(e.Str) {
			return nil, invalid("unknown type " + e.Raw)
		}
		types = append(types, TypeName(e.Str))
	}
	return Type{Types: types}, nil
}

func parseBound(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0, false
	}
	return int(v.Num), true
}

// resolve finds the node a same-document $ref points to.
func (b *builder) resolve(ref string) (*Node, error) {
	frag, ok := b.fragment(ref)
	if !ok {
		return nil, &UnsupportedRefError{Ref: ref}
	}
	frag, err := url.PathUnescape(frag)
	if err != nil {
		return nil, &UnresolvedRefError{Ref: ref}
	}
	if frag != "" && !strings.HasPrefix(frag, "/") {
		// Named anchors (e.g. "#foo") are not supported.
		return nil, &UnsupportedRefError{Ref: ref}
	}

	cur := b.root
	var ptr strings.Builder
	if frag != "" {
		for _, raw := range strings.Split(frag[1:], "/") {
			seg := pointerUnescaper.Replace(raw)
			switch {
			case cur.IsObject():
				next, found := lookupMember(cur, seg)
				if !found {
					return nil, &UnresolvedRefError{Ref: ref}
				}
				cur = next
			case cur.IsArray():
				i, aErr := strconv.Atoi(seg)
				items := cur.Array()
				if aErr != nil || i < 0 || i >= len(items) {
					return nil, &UnresolvedRefError{Ref: ref}
				}
				cur = items[i]
			default:
				return nil, &UnresolvedRefError{Ref: ref}
			}
			ptr.WriteByte('/')
			ptr.WriteString(pointerEscaper.Replace(seg))
		}
	}

	return b.build(cur, ptr.String())
}

// fragment returns the part of ref after '#' when ref points into this document.
func (b *builder) fragment(ref string) (string, bool) {
	if frag, ok := strings.CutPrefix(ref, "#"); ok {
		return frag, true
	}
	if b.rootID == "" {
		return "", false
	}
	if ref == b.rootID {
		return "", true
	}
	if frag, ok := strings.CutPrefix(ref, b.rootID+"#"); ok {
		return frag, true
	}
	return "", false
}

func lookupMember(obj gjson.Result, name string) (gjson.Result, bool) {
	var out gjson.Result
	found := false
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == name {
			out = v
			found = true
		}
		return true
	})
	return out, found
}
