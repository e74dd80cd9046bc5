package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

// branches validates value against every alternative independently, at the
// same path. The returned slice is indexed like alts whether or not the
// alternatives ran in parallel.
func (v *Validator) branches(alts []*schema.Node, value instance.Value, path instance.Path, st *frame) []Branch {
	out := make([]Branch, len(alts))
	eval := func(i int) {
		alt := alts[i]
		out[i] = Branch{
			Alternative: AlternativeName(alt.ID, alt.Title, alt.Ref, i),
			Errors:      v.validate(value, alt, path, st),
		}
	}

	if v.parallelism <= 1 || len(alts) < 2 {
		for i := range alts {
			eval(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(v.parallelism)
	for i := range alts {
		g.Go(func() error {
			eval(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func matched(bs []Branch) int {
	n := 0
	for _, b := range bs {
		if len(b.Errors) == 0 {
			n++
		}
	}
	return n
}

func alternativeNames(bs []Branch) []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Alternative
	}
	return names
}

// surface returns the aggregate error, followed by the branch errors when
// branches are flattened into the result.
func (v *Validator) surface(agg Error, bs []Branch) []Error {
	errs := []Error{agg}
	if v.branchMode == FlattenBranches {
		for _, b := range bs {
			errs = append(errs, b.Errors...)
		}
	}
	return errs
}

// oneOf fails when zero or more than one alternative matches. Both cases
// produce the same single error.
func (v *Validator) oneOf(k schema.OneOf, value instance.Value, path instance.Path, st *frame) []Error {
	bs := v.branches(k.Alternatives, value, path, st)
	n := matched(bs)
	if n == 1 {
		return nil
	}
	return v.surface(Error{
		Path:    path,
		Kind:    NotExactlyOneOf,
		Keyword: k.Name(),
		Detail:  CompositionDetail{Alternatives: alternativeNames(bs), Matched: n, Branches: bs},
	}, bs)
}

func (v *Validator) anyOf(k schema.AnyOf, value instance.Value, path instance.Path, st *frame) []Error {
	bs := v.branches(k.Alternatives, value, path, st)
	n := matched(bs)
	if n > 0 {
		return nil
	}
	return v.surface(Error{
		Path:    path,
		Kind:    NotAnyOf,
		Keyword: k.Name(),
		Detail:  CompositionDetail{Alternatives: alternativeNames(bs), Matched: n, Branches: bs},
	}, bs)
}

// allOf reports one error for each alternative that does not match.
func (v *Validator) allOf(k schema.AllOf, value instance.Value, path instance.Path, st *frame) []Error {
	bs := v.branches(k.Alternatives, value, path, st)
	n := matched(bs)
	var errs []Error
	for _, b := range bs {
		if len(b.Errors) == 0 {
			continue
		}
		failed := []Branch{b}
		errs = append(errs, v.surface(Error{
			Path:    path,
			Kind:    NotAllOf,
			Keyword: k.Name(),
			Detail:  CompositionDetail{Alternatives: []string{b.Alternative}, Matched: n, Branches: failed},
		}, failed)...)
	}
	return errs
}
