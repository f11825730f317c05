package docdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Clone(t *testing.T) {
	t.Parallel()

	src := &Source{
		Path:   "foo.js",
		Attrs:  map[string]string{"a": "b"},
		Blocks: []*CodeBlock{NewCodeBlock("foo()")},
	}

	got := src.Clone()
	assert.Equal(t, src, got)
	assert.NotSame(t, src, got)

	got.Attrs["c"] = "d"
	assert.Equal(t, map[string]string{"a": "b"}, src.Attrs, "attrs must not be shared")
}

func TestSource_Clone_nilAttrs(t *testing.T) {
	t.Parallel()

	got := (&Source{Path: "foo.js"}).Clone()
	assert.NotNil(t, got.Attrs)
	assert.Nil(t, got.Blocks)
}

func TestExample_IsLiteral(t *testing.T) {
	t.Parallel()

	assert.True(t, LiteralExample("foo").IsLiteral())

	structured := StructuredExample("foo", "", nil)
	assert.False(t, structured.IsLiteral())
	assert.NotNil(t, structured.Attrs)
}
