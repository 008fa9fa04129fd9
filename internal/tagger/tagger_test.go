package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
)

func stmt(data ast.S) ast.Stmt { return ast.Stmt{Data: data} }

func TestTagWhileBodyGetsLoopAncestry(t *testing.T) {
	brk := stmt(&ast.BreakStatement{})
	body := stmt(&ast.BlockStatement{Body: []ast.Stmt{brk}})
	while := stmt(&ast.WhileStatement{Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}}, Body: body})

	prog := &ast.Program{Body: []ast.Stmt{while}}
	tg := New("t.js", nil)
	require.NoError(t, tg.Tag(prog))

	assert.NotZero(t, prog.Body[0].LoopID)
	innerBreak := prog.Body[0].Data.(*ast.WhileStatement).Body.Data.(*ast.BlockStatement).Body[0]
	assert.Equal(t, prog.Body[0].LoopID, innerBreak.InnermostLoop)
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{stmt(&ast.BreakStatement{})}}
	tg := New("t.js", []string{"break;\n"})
	err := tg.Tag(prog)
	require.Error(t, err)
	d, ok := err.(*diagnostics.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diagnostics.ECodeBreakOutside, d.Code)
}

func TestContinueOutsideLoopIsRejected(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{stmt(&ast.ContinueStatement{})}}
	tg := New("t.js", []string{"continue;\n"})
	err := tg.Tag(prog)
	require.Error(t, err)
	d, ok := err.(*diagnostics.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diagnostics.ECodeContinueOutside, d.Code)
}

func TestContinueInsideSwitchButNotLoopIsRejected(t *testing.T) {
	sw := stmt(&ast.SwitchStatement{
		Discriminant: ast.Expr{Data: &ast.Identifier{Name: "x"}},
		Cases: []ast.SwitchCase{
			{Test: ast.Expr{Data: &ast.NumberLiteral{Value: 1}}, Consequent: []ast.Stmt{stmt(&ast.ContinueStatement{})}},
		},
	})
	prog := &ast.Program{Body: []ast.Stmt{sw}}
	tg := New("t.js", nil)
	err := tg.Tag(prog)
	require.Error(t, err)
	d := err.(*diagnostics.Diagnostic)
	// With no loop anywhere above it, the continue has no loop to target at
	// all, so the "outside" check fires before the in-switch one.
	assert.Equal(t, diagnostics.ECodeContinueOutside, d.Code)
}

func TestContinueInsideLoopInsideSwitchIsAccepted(t *testing.T) {
	innerContinue := stmt(&ast.ContinueStatement{})
	innerWhile := stmt(&ast.WhileStatement{Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}}, Body: innerContinue})
	sw := stmt(&ast.SwitchStatement{
		Discriminant: ast.Expr{Data: &ast.Identifier{Name: "x"}},
		Cases: []ast.SwitchCase{
			{Test: ast.Expr{Data: &ast.NumberLiteral{Value: 1}}, Consequent: []ast.Stmt{innerWhile}},
		},
	})
	prog := &ast.Program{Body: []ast.Stmt{sw}}
	tg := New("t.js", nil)
	assert.NoError(t, tg.Tag(prog))
}

// TestTagFunctionExpressionBodyGetsFreshAncestry exercises the fix that
// routes VariableDeclaration's FunctionExpression initializer through
// tagFunctionBody: a break inside the function body is rejected (no
// enclosing loop there) even though the declaration itself sits inside an
// enclosing loop.
func TestTagFunctionExpressionBodyGetsFreshAncestry(t *testing.T) {
	fnBody := []ast.Stmt{stmt(&ast.BreakStatement{})}
	decl := stmt(&ast.VariableDeclaration{Declarations: []ast.VariableDeclarator{
		{
			ID:   ast.Expr{Data: &ast.Identifier{Name: "f"}},
			Init: ast.Expr{Data: &ast.FunctionExpression{Body: fnBody}},
		},
	}})
	loopBody := stmt(&ast.BlockStatement{Body: []ast.Stmt{decl}})
	while := stmt(&ast.WhileStatement{Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}}, Body: loopBody})

	prog := &ast.Program{Body: []ast.Stmt{while}}
	tg := New("t.js", []string{"break;\n"})
	err := tg.Tag(prog)
	require.Error(t, err)
	assert.Equal(t, diagnostics.ECodeBreakOutside, err.(*diagnostics.Diagnostic).Code)
}

// TestTagFunctionExpressionBodyLoopWorksOnItsOwn verifies the positive case:
// a loop entirely inside the function expression's own body tags correctly
// and shares the module-wide loop id counter with the outer scope.
func TestTagFunctionExpressionBodyLoopWorksOnItsOwn(t *testing.T) {
	innerWhile := stmt(&ast.WhileStatement{
		Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}},
		Body: stmt(&ast.BreakStatement{}),
	})
	decl := stmt(&ast.VariableDeclaration{Declarations: []ast.VariableDeclarator{
		{
			ID:   ast.Expr{Data: &ast.Identifier{Name: "f"}},
			Init: ast.Expr{Data: &ast.FunctionExpression{Body: []ast.Stmt{innerWhile}}},
		},
	}})
	outerWhile := stmt(&ast.WhileStatement{Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}}, Body: stmt(&ast.BreakStatement{})})

	prog := &ast.Program{Body: []ast.Stmt{outerWhile, decl}}
	tg := New("t.js", nil)
	require.NoError(t, tg.Tag(prog))

	outerLoopID := prog.Body[0].LoopID
	innerLoopID := prog.Body[1].Data.(*ast.VariableDeclaration).Declarations[0].Init.Data.(*ast.FunctionExpression).Body[0].LoopID
	assert.NotZero(t, outerLoopID)
	assert.NotZero(t, innerLoopID)
	assert.NotEqual(t, outerLoopID, innerLoopID)
}

func TestFunctionDeclarationResetsAncestry(t *testing.T) {
	fn := stmt(&ast.FunctionDeclaration{Name: "f", Body: []ast.Stmt{stmt(&ast.BreakStatement{})}})
	loopBody := stmt(&ast.BlockStatement{Body: []ast.Stmt{fn}})
	while := stmt(&ast.WhileStatement{Test: ast.Expr{Data: &ast.BooleanLiteral{Value: true}}, Body: loopBody})

	prog := &ast.Program{Body: []ast.Stmt{while}}
	tg := New("t.js", []string{"break;\n"})
	err := tg.Tag(prog)
	require.Error(t, err)
	assert.Equal(t, diagnostics.ECodeBreakOutside, err.(*diagnostics.Diagnostic).Code)
}
