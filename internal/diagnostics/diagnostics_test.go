package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-werner/es5topy/internal/ast"
)

func TestFromLocBuildsLocation(t *testing.T) {
	sourceLines := []string{"var x = 1;\n", "x++;\n"}
	loc := ast.Loc{Start: ast.Location{Line: 2, Column: 0}}
	d := FromLoc("main.js", loc, sourceLines, ECodeUnsupportedNode, "boom", "try this")

	require.NotNil(t, d)
	assert.Equal(t, ECodeUnsupportedNode, d.Code)
	assert.Equal(t, "boom", d.Message)
	assert.Equal(t, "try this", d.Hint)
	assert.Equal(t, "main.js", d.Location.File)
	assert.Equal(t, 2, d.Location.Line)
	assert.Equal(t, 0, d.Location.Column)
	assert.Equal(t, "x++;\n", d.Location.LineText)
}

func TestFromLocOutOfRangeLineOmitsSnippet(t *testing.T) {
	loc := ast.Loc{Start: ast.Location{Line: 99, Column: 0}}
	d := FromLoc("main.js", loc, nil, ECodeUnsupportedNode, "boom", "")
	assert.Equal(t, "", d.Location.LineText)
}

func TestDiagnosticErrorImplementsErrorInterface(t *testing.T) {
	var err error = UnsupportedNodeError("main.js", ast.Loc{Start: ast.Location{Line: 1, Column: 4}}, []string{"foo();\n"}, "ThisExpression")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E_UNSUPPORTED_NODE")
	assert.Contains(t, err.Error(), "ThisExpression")
}

func TestFormatWithoutColorHasCaretSnippet(t *testing.T) {
	d := UnsupportedFeatureError("main.js", ast.Loc{Start: ast.Location{Line: 3, Column: 2}}, []string{"", "", "  foo.bar();\n"}, ECodeRegex, "regex literals are not supported", "avoid regex")
	out := d.Format(false)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "main.js:3:3: error: regex literals are not supported [E_REGEX]", lines[0])
	assert.Equal(t, "  foo.bar();", lines[1])
	assert.Equal(t, "  ^", lines[2])
	assert.Contains(t, out, "hint: avoid regex")
}

func TestFormatWithColorAddsEscapes(t *testing.T) {
	d := UnsupportedNodeError("main.js", ast.Loc{Start: ast.Location{Line: 1, Column: 0}}, []string{"x;\n"}, "Foo")
	colored := d.Format(true)
	plain := d.Format(false)
	assert.NotEqual(t, colored, plain)
	assert.Contains(t, colored, colorRed)
	assert.Contains(t, colored, colorReset)
}

func TestColumnClampsToLineLength(t *testing.T) {
	d := &Diagnostic{Location: Location{Column: 100}}
	assert.Equal(t, 3, d.Column("abc"))
}
