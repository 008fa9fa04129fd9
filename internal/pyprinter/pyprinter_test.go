package pyprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/r-werner/es5topy/internal/pyast"
)

func TestPrintSimpleModule(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.Import{Module: "math", Alias: "_js_math"}},
		{Data: &pyast.ImportFrom{Module: "js_compat", Names: []string{"JSUndefined", "js_truthy"}}},
		pyast.AssignOne(pyast.NameStore("total"), pyast.IntConst(0)),
	}}
	got := Print(mod)
	want := "import math as _js_math\n" +
		"from js_compat import JSUndefined, js_truthy\n" +
		"total = 0\n"
	assert.Equal(t, want, got)
}

func TestPrintImportWithoutAlias(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.Import{Module: "math", Alias: "math"}},
	}}
	assert.Equal(t, "import math\n", Print(mod))
}

func TestPrintFunctionDef(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.FunctionDef{
			Name: "add",
			Args: []string{"a", "b"},
			Body: []pyast.Stmt{
				{Data: &pyast.Return{Value: pyast.CallName("js_add", pyast.NameLoad("a"), pyast.NameLoad("b"))}},
			},
		}},
	}}
	want := "def add(a, b):\n    return js_add(a, b)\n"
	assert.Equal(t, want, Print(mod))
}

func TestPrintEmptyBodyEmitsPass(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.FunctionDef{Name: "noop", Body: nil}},
	}}
	assert.Equal(t, "def noop():\n    pass\n", Print(mod))
}

func TestPrintIfElse(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.If{
			Test:   pyast.CallName("js_truthy", pyast.NameLoad("x")),
			Body:   []pyast.Stmt{{Data: &pyast.Pass{}}},
			Orelse: []pyast.Stmt{{Data: &pyast.Pass{}}},
		}},
	}}
	want := "if js_truthy(x):\n    pass\nelse:\n    pass\n"
	assert.Equal(t, want, Print(mod))
}

// TestPrintCollapsesElseIfIntoElif exercises the one shape the switch-chain
// builder (internal/transform/switchstmt.go) relies on the printer to
// collapse: a single nested If sitting alone in an Orelse renders as a
// literal `elif`, not `else:` followed by a nested `if:`.
func TestPrintCollapsesElseIfIntoElif(t *testing.T) {
	inner := pyast.Stmt{Data: &pyast.If{
		Test: pyast.CallName("js_strict_eq", pyast.NameLoad("disc"), pyast.IntConst(2)),
		Body: []pyast.Stmt{{Data: &pyast.Pass{}}},
	}}
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.If{
			Test:   pyast.CallName("js_strict_eq", pyast.NameLoad("disc"), pyast.IntConst(1)),
			Body:   []pyast.Stmt{{Data: &pyast.Pass{}}},
			Orelse: []pyast.Stmt{inner},
		}},
	}}
	want := "if js_strict_eq(disc, 1):\n    pass\nelif js_strict_eq(disc, 2):\n    pass\n"
	assert.Equal(t, want, Print(mod))
}

func TestPrintMultiStatementOrelseStaysElse(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.If{
			Test: pyast.BoolConst(true),
			Body: []pyast.Stmt{{Data: &pyast.Pass{}}},
			Orelse: []pyast.Stmt{
				{Data: &pyast.Pass{}},
				{Data: &pyast.Break{}},
			},
		}},
	}}
	want := "if True:\n    pass\nelse:\n    pass\n    break\n"
	assert.Equal(t, want, Print(mod))
}

func TestPrintWhileAndFor(t *testing.T) {
	mod := &pyast.Module{Body: []pyast.Stmt{
		{Data: &pyast.While{Test: pyast.BoolConst(true), Body: []pyast.Stmt{{Data: &pyast.Break{}}}}},
		{Data: &pyast.For{Target: pyast.NameStore("k"), Iter: pyast.CallName("js_for_in_keys", pyast.NameLoad("obj")), Body: []pyast.Stmt{{Data: &pyast.Continue{}}}}},
	}}
	want := "while True:\n    break\nfor k in js_for_in_keys(obj):\n    continue\n"
	assert.Equal(t, want, Print(mod))
}

func TestExprStrConstants(t *testing.T) {
	p := &Printer{}
	assert.Equal(t, "None", p.exprStr(pyast.NoneConst()))
	assert.Equal(t, "True", p.exprStr(pyast.BoolConst(true)))
	assert.Equal(t, "False", p.exprStr(pyast.BoolConst(false)))
	assert.Equal(t, "42", p.exprStr(pyast.IntConst(42)))
	assert.Equal(t, "1.5", p.exprStr(pyast.FloatConst(1.5)))
	assert.Equal(t, "3.0", p.exprStr(pyast.FloatConst(3)))
	assert.Equal(t, `'hi'`, p.exprStr(pyast.StrConst("hi")))
}

func TestExprStrStringEscaping(t *testing.T) {
	p := &Printer{}
	assert.Equal(t, `'a\'b'`, p.exprStr(pyast.StrConst("a'b")))
	assert.Equal(t, `'a\nb'`, p.exprStr(pyast.StrConst("a\nb")))
	assert.Equal(t, `'a\\b'`, p.exprStr(pyast.StrConst(`a\b`)))
}

func TestExprStrCompoundNodes(t *testing.T) {
	p := &Printer{}
	bin := pyast.Expr{Data: &pyast.BinOp{Left: pyast.IntConst(1), Op: pyast.Add, Right: pyast.IntConst(2)}}
	assert.Equal(t, "(1 + 2)", p.exprStr(bin))

	cmp := pyast.Expr{Data: &pyast.Compare{Left: pyast.NameLoad("x"), Op: pyast.CmpLt, Right: pyast.IntConst(3)}}
	assert.Equal(t, "(x < 3)", p.exprStr(cmp))

	boolOp := pyast.Expr{Data: &pyast.BoolOp{Op: pyast.BoolOr, Values: []pyast.Expr{pyast.NameLoad("a"), pyast.NameLoad("b")}}}
	assert.Equal(t, "(a or b)", p.exprStr(boolOp))

	ifExp := pyast.Expr{Data: &pyast.IfExp{Test: pyast.NameLoad("t"), Body: pyast.NameLoad("a"), Orelse: pyast.NameLoad("b")}}
	assert.Equal(t, "(a if t else b)", p.exprStr(ifExp))

	named := pyast.Expr{Data: &pyast.NamedExpr{Target: pyast.NameStore("tmp"), Value: pyast.NameLoad("a")}}
	assert.Equal(t, "(tmp := a)", p.exprStr(named))
}

func TestExprStrSubscriptAndSlice(t *testing.T) {
	p := &Printer{}
	sub := pyast.SubLoad(pyast.NameLoad("obj"), pyast.StrConst("x"))
	assert.Equal(t, "obj['x']", p.exprStr(sub))

	slice := pyast.Expr{Data: &pyast.Subscript{
		Value: pyast.NameLoad("s"),
		Slice: pyast.Expr{Data: &pyast.Slice{Lower: pyast.IntConst(1), Upper: pyast.Expr{}}},
	}}
	assert.Equal(t, "s[1:]", p.exprStr(slice))
}

func TestFormatFloatNaN(t *testing.T) {
	p := &Printer{}
	got := p.exprStr(pyast.FloatConst(nan()))
	assert.Equal(t, `float("nan")`, got)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
