package srcparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-werner/es5topy/internal/ast"
)

func TestParseVariableDeclarationAndBinaryExpression(t *testing.T) {
	prog, err := Parse("t.js", "var x = 1 + 2;")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	decl, ok := prog.Body[0].Data.(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Declarations, 1)

	ident, ok := decl.Declarations[0].ID.Data.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)

	bin, ok := decl.Declarations[0].Init.Data.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinAdd, bin.Operator)
}

func TestParseLogicalVsBinarySplit(t *testing.T) {
	prog, err := Parse("t.js", "var x = a && b;")
	require.NoError(t, err)
	decl := prog.Body[0].Data.(*ast.VariableDeclaration)
	logical, ok := decl.Declarations[0].Init.Data.(*ast.LogicalExpression)
	require.True(t, ok)
	assert.Equal(t, ast.LogicalAnd, logical.Operator)
}

func TestParseUpdateVsUnarySplit(t *testing.T) {
	prog, err := Parse("t.js", "i++;")
	require.NoError(t, err)
	exprStmt := prog.Body[0].Data.(*ast.ExpressionStatement)
	update, ok := exprStmt.Expression.Data.(*ast.UpdateExpression)
	require.True(t, ok)
	assert.Equal(t, ast.UpdateIncrement, update.Operator)
	assert.False(t, update.Prefix)
}

func TestParseForLoopWithVarInit(t *testing.T) {
	prog, err := Parse("t.js", "for (var i = 0; i < 10; i++) { total = total + i; }")
	require.NoError(t, err)
	forStmt, ok := prog.Body[0].Data.(*ast.ForStatement)
	require.True(t, ok)
	assert.False(t, forStmt.Init.IsNil())
	assert.False(t, forStmt.Test.IsNil())
	assert.False(t, forStmt.Update.IsNil())
}

func TestParseSwitchStatement(t *testing.T) {
	src := `switch (x) {
		case 1:
			y = 1;
			break;
		default:
			y = 2;
	}`
	prog, err := Parse("t.js", src)
	require.NoError(t, err)
	sw, ok := prog.Body[0].Data.(*ast.SwitchStatement)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	assert.False(t, sw.Cases[0].Test.IsNil())
	assert.True(t, sw.Cases[1].Test.IsNil())
}

func TestParseFunctionExpressionInitializer(t *testing.T) {
	prog, err := Parse("t.js", "var f = function(a, b) { return a + b; };")
	require.NoError(t, err)
	decl := prog.Body[0].Data.(*ast.VariableDeclaration)
	fe, ok := decl.Declarations[0].Init.Data.(*ast.FunctionExpression)
	require.True(t, ok)
	assert.Len(t, fe.Params, 2)
}

func TestParseObjectLiteralKeyKinds(t *testing.T) {
	prog, err := Parse("t.js", `var o = { a: 1, "b": 2, 3: "three" };`)
	require.NoError(t, err)
	decl := prog.Body[0].Data.(*ast.VariableDeclaration)
	obj, ok := decl.Declarations[0].Init.Data.(*ast.ObjectExpression)
	require.True(t, ok)
	require.Len(t, obj.Properties, 3)
	assert.Equal(t, ast.ObjectKeyIdentifier, obj.Properties[0].KeyKind)
	assert.Equal(t, ast.ObjectKeyString, obj.Properties[1].KeyKind)
	assert.Equal(t, ast.ObjectKeyNumber, obj.Properties[2].KeyKind)
}

func TestParseSyntaxErrorReturnsParseError(t *testing.T) {
	_, err := Parse("t.js", "var x = ;")
	require.Error(t, err)
	_, ok := err.(*ParseError)
	assert.True(t, ok)
}

func TestParseForInStatement(t *testing.T) {
	prog, err := Parse("t.js", "for (var k in obj) { total = total + 1; }")
	require.NoError(t, err)
	forIn, ok := prog.Body[0].Data.(*ast.ForInStatement)
	require.True(t, ok)
	decl, ok := forIn.Left.Data.(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Declarations, 1)
}
