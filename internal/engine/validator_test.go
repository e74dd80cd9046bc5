package engine

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/json-schema-validator/internal/instance"
	"github.com/andyballingall/json-schema-validator/internal/schema"
)

func TestValidate_Bodies(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)

	tests := []struct {
		name  string
		input map[string]any
		want  []string
	}{
		{"no properties", map[string]any{}, []string{notExactlyOne}},
		{"property 1 only", map[string]any{"p1": "a"}, []string{notExactlyOne}},
		{"property 2 empty", map[string]any{"p1": "a", "p2": ""}, []string{notExactlyOne}},
		{"property 2 not empty", map[string]any{"p1": "a", "p2": "a"}, nil},
		{"properties 1, 2 and 4", map[string]any{"p1": "a", "p2": "a", "p4": "a"}, nil},
		{"property 3 empty", map[string]any{"p1": "a", "p3": ""}, []string{notExactlyOne}},
		{"property 3 not empty", map[string]any{"p1": "a", "p3": "a"}, nil},
		{"properties 1, 3 and 4", map[string]any{"p1": "a", "p3": "a", "p4": "a"}, nil},
		{"all four properties", map[string]any{"p1": "a", "p2": "a", "p3": "a", "p4": "a"}, []string{notExactlyOne}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := New().ValidateAny(tt.input, root)
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, res.Valid())
				assert.Empty(t, res.Errors())
				assert.NoError(t, res.Err())
				return
			}
			assert.False(t, res.Valid())
			assert.Equal(t, tt.want, res.Stacks())
		})
	}
}

func TestValidate_OneOfZeroAndManyLookAlike(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)

	none := Validate(parse(t, `{"p1": "a"}`), root)
	both := Validate(parse(t, `{"p1": "a", "p2": "a", "p3": "a"}`), root)

	assert.Equal(t, none.Stacks(), both.Stacks())

	d0 := none.Errors()[0].Detail.(CompositionDetail)
	d2 := both.Errors()[0].Detail.(CompositionDetail)
	assert.Equal(t, 0, d0.Matched)
	assert.Equal(t, 2, d2.Matched)
}

func TestValidate_BranchErrorsRetained(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)
	res := Validate(parse(t, `{"p1": "a", "p2": ""}`), root)
	require.Len(t, res.Errors(), 1)

	e := res.Errors()[0]
	assert.Equal(t, NotExactlyOneOf, e.Kind)
	assert.Equal(t, "oneOf", e.Keyword)

	d, ok := e.Detail.(CompositionDetail)
	require.True(t, ok)
	assert.Equal(t, []string{"<#/BodyWithProperty2>", "<#/BodyWithProperty3>"}, d.Alternatives)
	require.Len(t, d.Branches, 2)
	assert.Equal(t, []string{"instance.p2 does not meet minimum property length of 1"},
		stacksOf(d.Branches[0].Errors))
	assert.Equal(t, []string{`instance requires property "p3"`}, stacksOf(d.Branches[1].Errors))
}

func TestValidate_FlattenBranches(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)
	v := New(WithBranchMode(FlattenBranches))

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "no properties",
			input: `{}`,
			want: []string{
				notExactlyOne,
				`instance requires property "p1"`,
				`instance requires property "p2"`,
				`instance requires property "p1"`,
				`instance requires property "p3"`,
			},
		},
		{
			name:  "property 1 only",
			input: `{"p1": "a"}`,
			want: []string{
				notExactlyOne,
				`instance requires property "p2"`,
				`instance requires property "p3"`,
			},
		},
		{
			name:  "property 3 empty",
			input: `{"p1": "a", "p3": ""}`,
			want: []string{
				notExactlyOne,
				`instance requires property "p2"`,
				"instance.p3 does not meet minimum property length of 1",
			},
		},
		{
			name:  "both alternatives match",
			input: `{"p1": "a", "p2": "a", "p3": "a"}`,
			want:  []string{notExactlyOne},
		},
		{
			name:  "valid",
			input: `{"p1": "a", "p2": "a"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.Validate(parse(t, tt.input), root)
			if tt.want == nil {
				assert.True(t, res.Valid())
				return
			}
			assert.Equal(t, tt.want, res.Stacks())
		})
	}
}

func TestValidate_EvaluationOrder(t *testing.T) {
	t.Parallel()
	// Keywords are declared in reverse of their evaluation order.
	root := loadSchema(t, `{
		"properties": {
			"b": {"type": "string"},
			"a": {"required": ["x", "y"], "properties": {"z": {"minLength": 3}}}
		},
		"oneOf": [{"required": ["p"]}, {"required": ["q"]}],
		"minLength": 1,
		"required": ["r1", "r2"],
		"type": "object"
	}`)

	res := Validate(parse(t, `{"a": {"z": "no"}, "b": 1}`), root)
	assert.Equal(t, []string{
		`instance requires property "r1"`,
		`instance requires property "r2"`,
		"instance is not exactly one from [subschema 0],[subschema 1]",
		"instance.b is not of a type(s) string",
		`instance.a requires property "x"`,
		`instance.a requires property "y"`,
		"instance.a.z does not meet minimum property length of 3",
	}, res.Stacks())
}

func TestValidate_LeafKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
		input  string
		kind   Kind
		want   string
	}{
		{"type", `{"type": "object"}`, `"s"`, TypeMismatch, "instance is not of a type(s) object"},
		{"type list", `{"type": ["string", "null"]}`, `1`, TypeMismatch, "instance is not of a type(s) string,null"},
		{"integer", `{"type": "integer"}`, `1.5`, TypeMismatch, "instance is not of a type(s) integer"},
		{"required", `{"required": ["p1"]}`, `{}`, MissingProperty, `instance requires property "p1"`},
		{"minLength", `{"minLength": 2}`, `"é"`, TooShort, "instance does not meet minimum property length of 2"},
		{"maxLength", `{"maxLength": 1}`, `"ab"`, TooLong, "instance does not meet maximum property length of 1"},
		{"nested", `{"properties": {"a b": {"minLength": 1}}}`, `{"a b": ""}`, TooShort,
			`instance["a b"] does not meet minimum property length of 1`},
		{"html characters in name", `{"properties": {"a<b": {"minLength": 1}}}`, `{"a<b": ""}`, TooShort,
			`instance["a<b"] does not meet minimum property length of 1`},
		{"digit name", `{"properties": {"0": {"minLength": 1}}}`, `{"0": ""}`, TooShort,
			"instance[0] does not meet minimum property length of 1"},
		{"titled alternatives", `{"oneOf": [{"title": "A & <B>", "type": "string"}, {"title": "C", "type": "object"}]}`,
			`null`, NotExactlyOneOf, `instance is not exactly one from "A & <B>","C"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Validate(parse(t, tt.input), loadSchema(t, tt.schema))
			require.Len(t, res.Errors(), 1)
			assert.Equal(t, tt.kind, res.Errors()[0].Kind)
			assert.Equal(t, tt.want, res.Errors()[0].Stack())
		})
	}
}

func TestValidate_VacuousKeywords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		schema string
		input  string
	}{
		{"required on string", `{"required": ["a"]}`, `"s"`},
		{"minLength on number", `{"minLength": 5}`, `12`},
		{"minLength on array", `{"minLength": 5}`, `[1]`},
		{"maxLength on object", `{"maxLength": 0}`, `{"a": 1}`},
		{"properties on array", `{"properties": {"a": {"type": "string"}}}`, `[]`},
		{"absent property", `{"properties": {"a": {"type": "string"}}}`, `{}`},
		{"number accepts integer", `{"type": "number"}`, `3`},
		{"integer accepts whole float", `{"type": "integer"}`, `3.0`},
		{"true schema", `true`, `{"anything": [1, 2]}`},
		{"unknown keyword", `{"pattern": "^x$"}`, `"y"`},
		{"boolean type", `{"type": "boolean"}`, `false`},
		{"null type", `{"type": "null"}`, `null`},
		{"array type", `{"type": "array"}`, `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Validate(parse(t, tt.input), loadSchema(t, tt.schema))
			assert.True(t, res.Valid(), res.Stacks())
		})
	}
}

func TestValidate_NilNode(t *testing.T) {
	t.Parallel()
	res := Validate(instance.String("x"), nil)
	assert.True(t, res.Valid())
}

func TestValidate_AnyOf(t *testing.T) {
	t.Parallel()
	root := loadSchema(t, `{"anyOf": [{"title": "Short", "maxLength": 1}, {"$id": "urn:num", "type": "number"}]}`)

	assert.True(t, Validate(parse(t, `"a"`), root).Valid())
	assert.True(t, Validate(parse(t, `7`), root).Valid())

	res := Validate(parse(t, `"abc"`), root)
	assert.Equal(t, []string{`instance is not any of "Short",<urn:num>`}, res.Stacks())

	flat := New(WithBranchMode(FlattenBranches)).Validate(parse(t, `"abc"`), root)
	assert.Equal(t, []string{
		`instance is not any of "Short",<urn:num>`,
		"instance does not meet maximum property length of 1",
		"instance is not of a type(s) number",
	}, flat.Stacks())
}

func TestValidate_AllOf(t *testing.T) {
	t.Parallel()
	root := loadSchema(t, `{
		"allOf": [
			{"$ref": "#/defs/named"},
			{"type": "object"},
			{"required": ["b"]}
		],
		"defs": {"named": {"required": ["a", "c"]}}
	}`)

	assert.True(t, Validate(parse(t, `{"a": 1, "b": 2, "c": 3}`), root).Valid())

	res := Validate(parse(t, `{"c": 1}`), root)
	assert.Equal(t, []string{
		"instance does not match allOf schema <#/defs/named> with 1 error[s]",
		"instance does not match allOf schema [subschema 2] with 1 error[s]",
	}, res.Stacks())

	flat := New(WithBranchMode(FlattenBranches)).Validate(parse(t, `{"c": 1}`), root)
	assert.Equal(t, []string{
		"instance does not match allOf schema <#/defs/named> with 1 error[s]",
		`instance requires property "a"`,
		"instance does not match allOf schema [subschema 2] with 1 error[s]",
		`instance requires property "b"`,
	}, flat.Stacks())
}

func TestValidate_NestedComposition(t *testing.T) {
	t.Parallel()
	root := loadSchema(t, `{
		"properties": {
			"body": {"oneOf": [{"required": ["x"]}, {"required": ["y"]}]},
			"tail": {"type": "string"}
		}
	}`)
	res := Validate(parse(t, `{"tail": 1, "body": {}}`), root)
	assert.Equal(t, []string{
		"instance.body is not exactly one from [subschema 0],[subschema 1]",
		"instance.tail is not of a type(s) string",
	}, res.Stacks())
}

func TestValidate_RecursiveSchemas(t *testing.T) {
	t.Parallel()

	t.Run("recursion through properties", func(t *testing.T) {
		t.Parallel()
		root := loadSchema(t, `{"type": "object", "required": ["name"], "properties": {"child": {"$ref": "#"}}}`)
		res := Validate(parse(t, `{"name": "a", "child": {"name": "b", "child": {"child": {}}}}`), root)
		assert.Equal(t, []string{
			`instance.child.child requires property "name"`,
			`instance.child.child.child requires property "name"`,
		}, res.Stacks())
	})

	t.Run("composition cycle terminates", func(t *testing.T) {
		t.Parallel()
		root := loadSchema(t, `{"oneOf": [{"$ref": "#"}, {"type": "string"}]}`)
		res := Validate(parse(t, `1`), root)
		assert.True(t, res.Valid(), "the cyclic branch contributes no errors")
	})
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)
	in := parse(t, `{"p1": "a", "p3": ""}`)
	first := Validate(in, root)
	for range 10 {
		assert.Equal(t, first, Validate(in, root))
	}
}

func TestValidate_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	root := loadSchema(t, `{
		"allOf": [
			{"oneOf": [{"required": ["a"]}, {"required": ["b"]}, {"required": ["c"]}]},
			{"anyOf": [{"type": "string"}, {"properties": {"a": {"minLength": 9}}, "required": ["z"]}]},
			{"properties": {"a": {"oneOf": [{"minLength": 1}, {"maxLength": 3}]}}}
		]
	}`)
	inputs := []string{`{}`, `{"a": "xy"}`, `{"a": "", "b": 1, "c": 2}`, `"str"`}

	seq := New(WithBranchMode(FlattenBranches))
	par := New(WithBranchMode(FlattenBranches), WithParallelism(4))
	for _, in := range inputs {
		v := parse(t, in)
		assert.Equal(t, seq.Validate(v, root), par.Validate(v, root), in)
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	t.Parallel()
	root := loadBodies(t)
	in := parse(t, `{}`)
	v := New(WithParallelism(2))

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = v.Validate(in, root).Stacks()
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, []string{notExactlyOne}, r)
	}
}

func TestValidate_ProgrammaticSchema(t *testing.T) {
	t.Parallel()
	body2 := schema.NewNode(
		schema.Type{Types: []schema.TypeName{schema.TypeObject}},
		schema.Required{Names: []string{"p1", "p2"}},
	)
	body3 := schema.NewNode(schema.Required{Names: []string{"p1", "p3"}})
	root := schema.NewNode(schema.OneOf{Alternatives: []*schema.Node{
		schema.NewRef("#/BodyWithProperty2", body2),
		schema.NewRef("#/BodyWithProperty3", body3),
	}})

	res := Validate(instance.MustFromAny(map[string]any{"p1": "a"}), root)
	assert.Equal(t, []string{notExactlyOne}, res.Stacks())
}

func TestValidator_ValidateAny(t *testing.T) {
	t.Parallel()
	_, err := New().ValidateAny(map[string]any{"a": make(chan int)}, nil)
	var target *instance.UnsupportedTypeError
	require.ErrorAs(t, err, &target)
}

func TestValidator_Logs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	New(WithLogger(logger)).Validate(parse(t, `{}`), loadBodies(t))
	assert.Contains(t, buf.String(), "instance validated")
	assert.Contains(t, buf.String(), "valid=false")
}

func TestParseBranchMode(t *testing.T) {
	t.Parallel()
	m, err := ParseBranchMode("flatten")
	require.NoError(t, err)
	assert.Equal(t, FlattenBranches, m)
	assert.Equal(t, "flatten", m.String())

	m, err = ParseBranchMode("suppress")
	require.NoError(t, err)
	assert.Equal(t, SuppressBranches, m)
	assert.Equal(t, "suppress", m.String())

	_, err = ParseBranchMode("loud")
	var target *InvalidBranchModeError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "loud")
}
