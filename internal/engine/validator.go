// Package engine validates instances against schemas.
//
// The engine walks a schema node against an instance value, evaluating the
// keywords of each node in a fixed order (type, required, length bounds,
// oneOf, anyOf, allOf, properties) and concatenating every finding into one
// ordered list. It never stops at the first error.
//
// Composition keywords validate the instance against each alternative
// independently. By default only the aggregate error of a failed composition
// is reported; the errors explaining each failed alternative are kept on the
// error's CompositionDetail. WithBranchMode(FlattenBranches) reports them too.
//
// A Validator holds no mutable state and may be shared between goroutines.
package engine

import (
	"log/slog"

	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

// BranchMode controls whether the errors of failed composition alternatives
// are reported.
type BranchMode int

const (
	// SuppressBranches reports only the aggregate composition error.
	SuppressBranches BranchMode = iota
	// FlattenBranches reports the aggregate error followed by the errors of
	// every alternative, in alternative order.
	FlattenBranches
)

// ParseBranchMode parses "suppress" or "flatten".
func ParseBranchMode(s string) (BranchMode, error) {
	switch s {
	case "suppress":
		return SuppressBranches, nil
	case "flatten":
		return FlattenBranches, nil
	default:
		return SuppressBranches, &InvalidBranchModeError{Value: s}
	}
}

func (m BranchMode) String() string {
	if m == FlattenBranches {
		return "flatten"
	}
	return "suppress"
}

// Validator validates instances against schema nodes.
type Validator struct {
	branchMode  BranchMode
	parallelism int
	logger      *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithBranchMode sets how failed composition alternatives are reported.
func WithBranchMode(m BranchMode) Option {
	return func(v *Validator) {
		v.branchMode = m
	}
}

// WithParallelism sets how many composition alternatives may be evaluated
// concurrently. Values below 2 evaluate sequentially. The result is the same
// either way.
func WithParallelism(n int) Option {
	return func(v *Validator) {
		v.parallelism = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator. By default it suppresses branch errors, runs
// sequentially and logs nothing.
func New(opts ...Option) *Validator {
	v := &Validator{
		parallelism: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

var defaultValidator = New()

// Validate validates value against node with the default Validator.
func Validate(value instance.Value, node *schema.Node) Result {
	return defaultValidator.Validate(value, node)
}

// Validate validates value against node. A nil node accepts every value.
func (v *Validator) Validate(value instance.Value, node *schema.Node) Result {
	res := newResult(v.validate(value, node, instance.Root(), nil))
	v.logger.Debug("instance validated", "valid", res.Valid(), "errors", len(res.errors))
	return res
}

// ValidateAny converts the generic output of encoding/json to an instance
// and validates it against node.
func (v *Validator) ValidateAny(doc any, node *schema.Node) (Result, error) {
	value, err := instance.FromAny(doc)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(value, node), nil
}

// frame records a node being evaluated at an instance location. A node met
// again at the same location is cyclic and contributes no errors.
type frame struct {
	node    *schema.Node
	pointer string
	parent  *frame
}

func (f *frame) contains(n *schema.Node, pointer string) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.node == n && cur.pointer == pointer {
			return true
		}
	}
	return false
}

func (v *Validator) validate(value instance.Value, node *schema.Node, path instance.Path, st *frame) []Error {
	if node == nil {
		return nil
	}
	target := node.Target()
	if target == nil {
		return nil
	}
	pointer := path.Pointer()
	if st.contains(target, pointer) {
		return nil
	}
	st = &frame{node: target, pointer: pointer, parent: st}

	var errs []Error
	for _, kw := range target.Keywords() {
		switch k := kw.(type) {
		case schema.Type:
			errs = append(errs, checkType(k, value, path)...)
		case schema.Required:
			errs = append(errs, checkRequired(k, value, path)...)
		case schema.MinLength:
			errs = append(errs, checkMinLength(k, value, path)...)
		case schema.MaxLength:
			errs = append(errs, checkMaxLength(k, value, path)...)
		case schema.OneOf:
			errs = append(errs, v.oneOf(k, value, path, st)...)
		case schema.AnyOf:
			errs = append(errs, v.anyOf(k, value, path, st)...)
		case schema.AllOf:
			errs = append(errs, v.allOf(k, value, path, st)...)
		case schema.Properties:
			errs = append(errs, v.properties(k, value, path, st)...)
		}
	}
	return errs
}
