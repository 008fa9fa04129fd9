package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"for", "for_js"},
		{"class", "class_js"},
		{"True", "True_js"},
		{"print", "print_js"},
		{"x", "x"},
		{"total", "total"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Sanitize(c.raw), "Sanitize(%q)", c.raw)
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, isReserved("while"))
	assert.True(t, isReserved("None"))
	assert.False(t, isReserved("while_js"))
	assert.False(t, isReserved("counter"))
}

func TestMapperDeclareAndLookup(t *testing.T) {
	m := NewMapper()
	got := m.Declare("for")
	assert.Equal(t, "for_js", got)
	assert.Equal(t, "for_js", m.Lookup("for"))
}

func TestMapperLookupFallsBackToSanitize(t *testing.T) {
	m := NewMapper()
	// never declared anywhere: falls back to pure sanitization (spec's
	// "used for free references like globals").
	assert.Equal(t, "someGlobal", m.Lookup("someGlobal"))
	assert.Equal(t, "class_js", m.Lookup("class"))
}

func TestMapperScopeShadowing(t *testing.T) {
	m := NewMapper()
	m.Declare("x")
	require.Equal(t, 1, m.depth())

	m.EnterScope()
	require.Equal(t, 2, m.depth())
	m.Declare("x")
	assert.Equal(t, "x", m.Lookup("x"))

	m.ExitScope()
	assert.Equal(t, 1, m.depth())
	assert.Equal(t, "x", m.Lookup("x"))
}

func TestMapperExitRootPanics(t *testing.T) {
	m := NewMapper()
	assert.Panics(t, func() { m.ExitScope() })
}

func TestMapperDeclareAs(t *testing.T) {
	m := NewMapper()
	m.EnterScope()
	m.DeclareAs("fact", "fact")
	assert.Equal(t, "fact", m.Lookup("fact"))
	m.ExitScope()
	// The alias only lives in the scope it was declared into.
	assert.Equal(t, "fact", m.Lookup("fact"))
}

func TestHasJSSuffixCollisionRisk(t *testing.T) {
	assert.True(t, hasJSSuffixCollisionRisk("for_js"))
	assert.False(t, hasJSSuffixCollisionRisk("for"))
}
