package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Root(), "instance"},
		{"property", Root().Property("p2"), "instance.p2"},
		{"nested", Root().Property("a").Property("b_c"), "instance.a.b_c"},
		{"index", Root().Property("items").Index(3), "instance.items[3]"},
		{"quoted", Root().Property("a b"), `instance["a b"]`},
		{"leading digit", Root().Property("1a"), `instance["1a"]`},
		{"empty name", Root().Property(""), `instance[""]`},
		{"digits", Root().Property("0"), "instance[0]"},
		{"digits nested", Root().Property("a").Property("42"), "instance.a[42]"},
		{"html characters", Root().Property("a<b"), `instance["a<b"]`},
		{"ampersand", Root().Property("x & y"), `instance["x & y"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"A & <B>"`, Quote("A & <B>"))
	assert.Equal(t, `"say \"hi\""`, Quote(`say "hi"`))
	assert.Equal(t, `"tab\there"`, Quote("tab\there"))
	assert.Equal(t, `""`, Quote(""))
}

func TestPath_Pointer(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Root().Pointer())
	assert.Equal(t, "/a~1b/0/c~0d", Root().Property("a/b").Index(0).Property("c~d").Pointer())
}

func TestPath_IsImmutable(t *testing.T) {
	t.Parallel()
	base := Root().Property("a")
	left := base.Property("l")
	right := base.Property("r")

	assert.Equal(t, "instance.a", base.String())
	assert.Equal(t, "instance.a.l", left.String())
	assert.Equal(t, "instance.a.r", right.String())
	assert.True(t, Root().IsRoot())
	assert.False(t, base.IsRoot())

	segs := right.Segments()
	assert.Len(t, segs, 2)
	assert.Equal(t, "r", segs[1].Name())
	_, isIndex := segs[1].ArrayIndex()
	assert.False(t, isIndex)
}
