package transform

import (
	"fmt"
	"math"

	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyast"
)

// transformExpr is the expression visitor (spec.md §4.5). It is only ever
// called in "value position" — the few SRC expression kinds that may need
// multiple TGT statements (AssignmentExpression, UpdateExpression,
// SequenceExpression) are handled separately in statement context
// (transformExpressionStatement, transformForClauseExpr). Here,
// UpdateExpression and SequenceExpression are rejected with their dedicated
// context-error codes, and an AssignmentExpression is accepted only as a
// plain `=` to an identifier (see transformAssignmentExpr).
func (t *Transformer) transformExpr(e ast.Expr) (pyast.Expr, error) {
	switch n := e.Data.(type) {
	case *ast.Identifier:
		return t.transformIdentifier(n), nil

	case *ast.NullLiteral:
		return pyast.NoneConst(), nil

	case *ast.BooleanLiteral:
		return pyast.BoolConst(n.Value), nil

	case *ast.NumberLiteral:
		return numberLiteralConst(n.Value), nil

	case *ast.StringLiteral:
		return pyast.StrConst(n.Value), nil

	case *ast.RegExpLiteral:
		return pyast.Expr{}, t.errAt(e.Loc, diagnostics.ECodeRegex,
			"regular expression literals are not supported", "")

	case *ast.ArrayExpression:
		return t.transformArray(n)

	case *ast.ObjectExpression:
		return t.transformObject(n)

	case *ast.MemberExpression:
		return t.transformMember(n, pyast.Load)

	case *ast.BinaryExpression:
		return t.transformBinary(e.Loc, n)

	case *ast.LogicalExpression:
		return t.transformLogical(n)

	case *ast.UnaryExpression:
		return t.transformUnary(e.Loc, n)

	case *ast.ConditionalExpression:
		return t.transformConditional(n)

	case *ast.AssignmentExpression:
		return t.transformAssignmentExpr(e.Loc, n)

	case *ast.UpdateExpression:
		return pyast.Expr{}, t.errAt(e.Loc, diagnostics.ECodeUpdateExprCtx,
			"'++'/'--' may only be used as a statement or a for-loop update clause", "")

	case *ast.SequenceExpression:
		return pyast.Expr{}, t.errAt(e.Loc, diagnostics.ECodeSequenceExprCtx,
			"the comma operator is only allowed in a for-statement's init/update clause", "")

	case *ast.CallExpression:
		return t.transformCall(e.Loc, n)

	case *ast.NewExpression:
		return t.transformNew(e.Loc, n)

	case *ast.FunctionExpression:
		return pyast.Expr{}, t.errAt(e.Loc, diagnostics.ECodeUnsupportedFeature,
			"function expressions are only supported as the sole initializer of a variable declaration",
			"assign the function to a variable on its own line, e.g. var f = function() { ... };")

	default:
		return pyast.Expr{}, t.unsupportedNode(e.Loc, nodeKindName(n))
	}
}

// numberLiteralConst lowers a SRC NumberLiteral to a TGT int constant when
// its value is whole and representable as an int64, and to a float constant
// otherwise. SRC has a single number type, but a computed subscript or
// slice bound needs a Python int — a float index/slice bound raises
// TypeError at runtime — so whole-valued literals (the common case for
// array indices, string-method offsets, and loop bounds) come out as ints
// rather than uniformly as floats.
func numberLiteralConst(v float64) pyast.Expr {
	if !math.IsInf(v, 0) && v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		return pyast.IntConst(int64(v))
	}
	return pyast.FloatConst(v)
}

func nodeKindName(n interface{}) string {
	switch n.(type) {
	case *ast.ThisExpression:
		return "ThisExpression"
	case *ast.ArrowFunctionExpression:
		return "ArrowFunctionExpression"
	default:
		return "expression"
	}
}

func (t *Transformer) transformExprList(list []ast.Expr) ([]pyast.Expr, error) {
	out := make([]pyast.Expr, len(list))
	for i, e := range list {
		v, err := t.transformExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (t *Transformer) transformIdentifier(n *ast.Identifier) pyast.Expr {
	switch n.Name {
	case "undefined":
		return t.jsUndefinedRef()
	case "NaN":
		return pyast.FloatConst(math.NaN())
	case "Infinity":
		return pyast.AttrLoad(t.mathAliasRef(), "inf")
	default:
		return pyast.NameLoad(t.scope.Lookup(n.Name))
	}
}

// transformArray implements ArrayExpression (spec.md §4.5): elements become
// a TGT List literal, with holes (elision) translated to None.
func (t *Transformer) transformArray(n *ast.ArrayExpression) (pyast.Expr, error) {
	elements := make([]pyast.Expr, len(n.Elements))
	for i, el := range n.Elements {
		if el.IsNil() {
			elements[i] = pyast.NoneConst()
			continue
		}
		v, err := t.transformExpr(el)
		if err != nil {
			return pyast.Expr{}, err
		}
		elements[i] = v
	}
	return pyast.Expr{Data: &pyast.List{Elements: elements}}, nil
}

// transformObject implements ObjectExpression (spec.md §4.5): a TGT Dict
// literal keyed by identifier/string-literal text or the numeric literal's
// original lexeme (spec.md §9's float-vs-string-key caution — object keys
// are always strings here, never float-typed, so the raw decimal text is
// used verbatim rather than str(value)).
func (t *Transformer) transformObject(n *ast.ObjectExpression) (pyast.Expr, error) {
	keys := make([]pyast.Expr, len(n.Properties))
	values := make([]pyast.Expr, len(n.Properties))
	for i, p := range n.Properties {
		switch p.KeyKind {
		case ast.ObjectKeyIdentifier, ast.ObjectKeyString:
			keys[i] = pyast.StrConst(p.KeyName)
		case ast.ObjectKeyNumber:
			keys[i] = pyast.StrConst(p.KeyName)
		case ast.ObjectKeyComputed:
			return pyast.Expr{}, t.errAt(p.Loc, diagnostics.ECodeComputedKey,
				"computed object keys are not supported", "use a literal identifier or string key")
		default:
			return pyast.Expr{}, t.errAt(p.Loc, diagnostics.ECodeObjectKey,
				"unsupported object key form", "")
		}
		v, err := t.transformExpr(p.Value)
		if err != nil {
			return pyast.Expr{}, err
		}
		values[i] = v
	}
	return pyast.Expr{Data: &pyast.Dict{Keys: keys, Values: values}}, nil
}

// transformMember implements MemberExpression (spec.md §4.5): `.length` on
// a non-computed access becomes len(...), any other non-computed member
// becomes a string-key subscript, and a computed member becomes a
// subscript keyed by the (visited) computed expression. ctx threads through
// Load/Store so AssignmentExpression targets reuse this logic.
func (t *Transformer) transformMember(n *ast.MemberExpression, ctx pyast.NameCtx) (pyast.Expr, error) {
	if !n.Computed && ctx == pyast.Load {
		if objIdent, ok := n.Object.Data.(*ast.Identifier); ok && objIdent.Name == "Math" {
			if prop, ok := n.Property.Data.(*ast.Identifier); ok && prop.Name == "PI" {
				return t.transformMathPI(), nil
			}
		}
	}

	obj, err := t.transformExpr(n.Object)
	if err != nil {
		return pyast.Expr{}, err
	}

	if !n.Computed {
		prop, ok := n.Property.Data.(*ast.Identifier)
		if !ok {
			return pyast.Expr{}, t.unsupportedNode(n.Property.Loc, "member property")
		}
		if prop.Name == "length" && ctx == pyast.Load {
			return pyast.CallName("len", obj), nil
		}
		key := pyast.StrConst(prop.Name)
		if ctx == pyast.Store {
			return pyast.Expr{Data: &pyast.Subscript{Value: obj, Slice: key, Ctx: pyast.Store}}, nil
		}
		return pyast.Expr{Data: &pyast.Subscript{Value: obj, Slice: key, Ctx: pyast.Load}}, nil
	}

	// A computed member's key can legitimately be either an array index or
	// an object/dict key (spec.md §1: no type inference), so it isn't safe
	// to force int(...) here the way toIndex does for string-only receivers
	// in call.go — that would break `obj[k]` over a for-in key. Whole-number
	// index literals already come out of numberLiteralConst as a Python int,
	// which covers the common `a[0]` case without touching dict access.
	key, err := t.transformExpr(n.Property)
	if err != nil {
		return pyast.Expr{}, err
	}
	return pyast.Expr{Data: &pyast.Subscript{Value: obj, Slice: key, Ctx: ctx}}, nil
}

// transformBinary implements BinaryExpression (spec.md §4.5): strict
// (in)equality and arithmetic route through the runtime (C1); relational
// operators compile to TGT's native Compare; anything else (loose
// equality, instanceof/in, bitwise/shift) is out of scope.
func (t *Transformer) transformBinary(loc ast.Loc, n *ast.BinaryExpression) (pyast.Expr, error) {
	left, err := t.transformExpr(n.Left)
	if err != nil {
		return pyast.Expr{}, err
	}
	right, err := t.transformExpr(n.Right)
	if err != nil {
		return pyast.Expr{}, err
	}

	switch n.Operator {
	case ast.BinStrictEq:
		t.imp.AddRuntime("js_strict_eq")
		return pyast.CallName("js_strict_eq", left, right), nil
	case ast.BinStrictNeq:
		t.imp.AddRuntime("js_strict_neq")
		return pyast.CallName("js_strict_neq", left, right), nil
	case ast.BinLt:
		return pyast.Expr{Data: &pyast.Compare{Left: left, Op: pyast.CmpLt, Right: right}}, nil
	case ast.BinLe:
		return pyast.Expr{Data: &pyast.Compare{Left: left, Op: pyast.CmpLtE, Right: right}}, nil
	case ast.BinGt:
		return pyast.Expr{Data: &pyast.Compare{Left: left, Op: pyast.CmpGt, Right: right}}, nil
	case ast.BinGe:
		return pyast.Expr{Data: &pyast.Compare{Left: left, Op: pyast.CmpGtE, Right: right}}, nil
	case ast.BinAdd:
		t.imp.AddRuntime("js_add")
		return pyast.CallName("js_add", left, right), nil
	case ast.BinSub:
		t.imp.AddRuntime("js_sub")
		return pyast.CallName("js_sub", left, right), nil
	case ast.BinMul:
		t.imp.AddRuntime("js_mul")
		return pyast.CallName("js_mul", left, right), nil
	case ast.BinDiv:
		t.imp.AddRuntime("js_div")
		return pyast.CallName("js_div", left, right), nil
	case ast.BinMod:
		t.imp.AddRuntime("js_mod")
		return pyast.CallName("js_mod", left, right), nil
	default:
		return pyast.Expr{}, t.errAt(loc, diagnostics.ECodeUnsupportedFeature,
			"unsupported binary operator: "+string(n.Operator), "")
	}
}

// transformLogical implements LogicalExpression (spec.md §4.5, §9's
// "linchpin"): `left && right` / `left || right` must evaluate left exactly
// once and only evaluate right when short-circuiting doesn't apply. This
// caches left in a temp via a NamedExpr inside the IfExp test, so the
// printed form reads `(right if js_truthy((__js_tmpN := left)) else __js_tmpN)`
// for `&&`, and the mirror image for `||`.
func (t *Transformer) transformLogical(n *ast.LogicalExpression) (pyast.Expr, error) {
	left, err := t.transformExpr(n.Left)
	if err != nil {
		return pyast.Expr{}, err
	}
	right, err := t.transformExpr(n.Right)
	if err != nil {
		return pyast.Expr{}, err
	}

	tmp := t.newTemp()
	target := pyast.NameStore(tmp)
	named := pyast.Expr{Data: &pyast.NamedExpr{Target: target, Value: left}}
	t.imp.AddRuntime("js_truthy")
	test := pyast.CallName("js_truthy", named)
	tmpRef := pyast.NameLoad(tmp)

	switch n.Operator {
	case ast.LogicalAnd:
		// left is falsy -> short-circuit to the cached left value; else right.
		return pyast.Expr{Data: &pyast.IfExp{Test: test, Body: right, Orelse: tmpRef}}, nil
	case ast.LogicalOr:
		// left is truthy -> short-circuit to the cached left value; else right.
		return pyast.Expr{Data: &pyast.IfExp{Test: test, Body: tmpRef, Orelse: right}}, nil
	default:
		return pyast.Expr{}, fmt.Errorf("transform: unknown logical operator %q", string(n.Operator))
	}
}

// transformUnary implements UnaryExpression (spec.md §4.5): `!` routes
// through js_truthy + boolean negation, numeric `-`/`+` route through
// Python's native unary minus and js_to_number respectively (`-Infinity`
// needs no special case: it composes to USub over `_js_math.inf`, printed
// as `(-_js_math.inf)`); everything else (typeof/delete/void/~) is
// rejected.
func (t *Transformer) transformUnary(loc ast.Loc, n *ast.UnaryExpression) (pyast.Expr, error) {
	arg, err := t.transformExpr(n.Argument)
	if err != nil {
		return pyast.Expr{}, err
	}

	switch n.Operator {
	case ast.UnaryNot:
		t.imp.AddRuntime("js_truthy")
		return pyast.Expr{Data: &pyast.UnaryOp{Op: pyast.Not, Operand: pyast.CallName("js_truthy", arg)}}, nil
	case ast.UnaryNeg:
		return pyast.Expr{Data: &pyast.UnaryOp{Op: pyast.USub, Operand: arg}}, nil
	case ast.UnaryPlus:
		t.imp.AddRuntime("js_to_number")
		return pyast.CallName("js_to_number", arg), nil
	default:
		return pyast.Expr{}, t.errAt(loc, diagnostics.ECodeUnsupportedFeature,
			"unsupported unary operator: "+string(n.Operator), "")
	}
}

func (t *Transformer) transformConditional(n *ast.ConditionalExpression) (pyast.Expr, error) {
	test, err := t.wrapTruthy(n.Test)
	if err != nil {
		return pyast.Expr{}, err
	}
	cons, err := t.transformExpr(n.Consequent)
	if err != nil {
		return pyast.Expr{}, err
	}
	alt, err := t.transformExpr(n.Alternate)
	if err != nil {
		return pyast.Expr{}, err
	}
	return pyast.Expr{Data: &pyast.IfExp{Test: test, Body: cons, Orelse: alt}}, nil
}

// transformAssignmentExpr handles AssignmentExpression when it appears in
// expression (value) position: only a plain `=` to a plain identifier is
// expressible as a single TGT expression, via NamedExpr. Anything else
// (augmented operators, or any member target) can only be expanded at
// statement level (expandAssignmentStmt) — using it here is a context
// error, not an unsupported-node error, since the construct is supported,
// just not in this position.
func (t *Transformer) transformAssignmentExpr(loc ast.Loc, n *ast.AssignmentExpression) (pyast.Expr, error) {
	if n.Operator != ast.AssignPlain {
		return pyast.Expr{}, t.errAt(loc, diagnostics.ECodeUnsupportedFeature,
			"augmented assignment is only allowed as a statement", "split this into its own statement")
	}
	ident, ok := n.Target.Data.(*ast.Identifier)
	if !ok {
		return pyast.Expr{}, t.errAt(loc, diagnostics.ECodeUnsupportedFeature,
			"assignment to a member expression is only allowed as a statement", "split this into its own statement")
	}
	value, err := t.transformExpr(n.Value)
	if err != nil {
		return pyast.Expr{}, err
	}
	name := t.scope.Lookup(ident.Name)
	return pyast.Expr{Data: &pyast.NamedExpr{Target: pyast.NameStore(name), Value: value}}, nil
}

// transformNew implements NewExpression (spec.md §4.5): only `new Date()`
// is supported, aliased onto the same runtime helper Date.now() uses,
// since both spellings exist in the wild purely to get a timestamp.
func (t *Transformer) transformNew(loc ast.Loc, n *ast.NewExpression) (pyast.Expr, error) {
	if ident, ok := n.Callee.Data.(*ast.Identifier); ok && ident.Name == "Date" && len(n.Arguments) == 0 {
		t.imp.AddRuntime("js_date_now")
		return pyast.CallName("js_date_now"), nil
	}
	return pyast.Expr{}, t.unsupportedNode(loc, "NewExpression")
}
