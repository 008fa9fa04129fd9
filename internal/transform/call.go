package transform

import (
	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyast"
)

// transformCall implements CallExpression (spec.md §4.5): a fixed dispatch
// table of callee *patterns* (not inferred types — this transformer does
// no type inference per spec.md §1) rewrites known library calls onto
// runtime helpers or native TGT equivalents; anything that doesn't match a
// row becomes a generic Call over the visited callee.
func (t *Transformer) transformCall(loc ast.Loc, n *ast.CallExpression) (pyast.Expr, error) {
	if mem, ok := n.Callee.Data.(*ast.MemberExpression); ok && !mem.Computed {
		method, hasMethod := mem.Property.Data.(*ast.Identifier)

		if obj, ok := mem.Object.Data.(*ast.Identifier); ok && hasMethod {
			switch obj.Name {
			case "Math":
				if v, handled, err := t.transformMathCall(loc, method.Name, n.Arguments); handled {
					return v, err
				}
			case "Date":
				if method.Name == "now" && len(n.Arguments) == 0 {
					t.imp.AddRuntime("js_date_now")
					return pyast.CallName("js_date_now"), nil
				}
			case "console":
				if method.Name == "log" {
					args, err := t.transformExprList(n.Arguments)
					if err != nil {
						return pyast.Expr{}, err
					}
					t.imp.AddRuntime("console_log")
					return pyast.CallName("console_log", args...), nil
				}
			}
		}

		if hasMethod {
			if v, handled, err := t.transformStringOrArrayCall(loc, mem.Object, method.Name, n.Arguments); handled {
				return v, err
			}
		}
	}

	callee, err := t.transformExpr(n.Callee)
	if err != nil {
		return pyast.Expr{}, err
	}
	args, err := t.transformExprList(n.Arguments)
	if err != nil {
		return pyast.Expr{}, err
	}
	return pyast.Expr{Data: &pyast.Call{Func: callee, Args: args}}, nil
}

// transformMathCall implements the Math.* rows of spec.md §4.5's dispatch
// table. handled is false when method isn't a recognized Math member, so
// the caller can fall through to the generic-call path (e.g. a user value
// that happens to be named Math but isn't the global).
func (t *Transformer) transformMathCall(loc ast.Loc, method string, args []ast.Expr) (pyast.Expr, bool, error) {
	switch method {
	case "abs", "max", "min":
		a, err := t.transformExprList(args)
		return pyast.CallName(method, a...), true, err

	case "sqrt", "floor", "ceil", "round", "log", "log10", "log2", "sin", "cos", "tan":
		a, err := t.transformExprList(args)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		alias := t.mathAliasRef()
		return pyast.CallOf(pyast.AttrLoad(alias, method), a...), true, nil

	case "pow":
		if len(args) != 2 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeUnsupportedFeature,
				"Math.pow requires exactly two arguments", "")
		}
		l, err := t.transformExpr(args[0])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		r, err := t.transformExpr(args[1])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.Expr{Data: &pyast.BinOp{Left: l, Op: pyast.Pow, Right: r}}, true, nil

	case "random":
		t.imp.AddStdlib("random")
		alias := pyast.NameLoad("_js_random")
		return pyast.CallOf(pyast.AttrLoad(alias, "random")), true, nil

	default:
		return pyast.Expr{}, false, nil
	}
}

// transformMathPI implements the non-call `Math.PI` member access from
// spec.md §4.5's table; invoked from transformMember, not transformCall.
func (t *Transformer) transformMathPI() pyast.Expr {
	return pyast.AttrLoad(t.mathAliasRef(), "pi")
}

// transformStringOrArrayCall implements the string-method rows (dispatched
// unconditionally by method name, regardless of receiver — this
// transformer has no types to check) and the two array-only rows (push/pop,
// which require the receiver to be provably an array literal, per spec.md
// §4.5's "Array methods on non-literal receiver -> E_ARRAY_METHOD_AMBIGUOUS").
func (t *Transformer) transformStringOrArrayCall(loc ast.Loc, receiver ast.Expr, method string, args []ast.Expr) (pyast.Expr, bool, error) {
	switch method {
	case "charAt":
		if len(args) != 1 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeUnsupportedFeature, "charAt requires exactly one argument", "")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		idx, err := t.transformExpr(args[0])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		idx = toIndex(idx)
		upper := pyast.Expr{Data: &pyast.BinOp{Left: idx, Op: pyast.Add, Right: pyast.IntConst(1)}}
		return pyast.Expr{Data: &pyast.Subscript{Value: recv, Slice: pyast.Expr{Data: &pyast.Slice{Lower: idx, Upper: upper}}, Ctx: pyast.Load}}, true, nil

	case "charCodeAt":
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		a, err := t.transformExprList(args)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		t.imp.AddRuntime("js_char_code_at")
		return pyast.CallName("js_char_code_at", append([]pyast.Expr{recv}, a...)...), true, nil

	case "substring":
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		a, err := t.transformExprList(args)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		t.imp.AddRuntime("js_substring")
		return pyast.CallName("js_substring", append([]pyast.Expr{recv}, a...)...), true, nil

	case "toLowerCase", "toUpperCase":
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		name := "lower"
		if method == "toUpperCase" {
			name = "upper"
		}
		return pyast.CallOf(pyast.AttrLoad(recv, name)), true, nil

	case "indexOf":
		if len(args) != 1 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeUnsupportedFeature, "indexOf requires exactly one argument", "")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		needle, err := t.transformExpr(args[0])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.CallOf(pyast.AttrLoad(recv, "find"), needle), true, nil

	case "slice":
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		var lower, upper pyast.Expr
		if len(args) > 0 {
			lower, err = t.transformExpr(args[0])
			if err != nil {
				return pyast.Expr{}, true, err
			}
			lower = toIndex(lower)
		}
		if len(args) > 1 {
			upper, err = t.transformExpr(args[1])
			if err != nil {
				return pyast.Expr{}, true, err
			}
			upper = toIndex(upper)
		}
		return pyast.Expr{Data: &pyast.Subscript{Value: recv, Slice: pyast.Expr{Data: &pyast.Slice{Lower: lower, Upper: upper}}, Ctx: pyast.Load}}, true, nil

	case "split":
		if len(args) != 1 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeUnsupportedFeature, "split requires exactly one argument", "")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		sep, err := t.transformExpr(args[0])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.CallOf(pyast.AttrLoad(recv, "split"), sep), true, nil

	case "trim":
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.CallOf(pyast.AttrLoad(recv, "strip")), true, nil

	case "replace":
		if len(args) != 2 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeUnsupportedFeature, "replace requires exactly two arguments", "")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		a, err := t.transformExprList(args)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.CallOf(pyast.AttrLoad(recv, "replace"), a[0], a[1], pyast.IntConst(1)), true, nil

	case "push":
		if _, isLiteral := receiver.Data.(*ast.ArrayExpression); !isLiteral {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeArrayMethodAmbig,
				"push on a receiver that is not provably an array literal", "this transformer does not infer types")
		}
		if len(args) != 1 {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeArrayPushMultiArg,
				"push requires exactly one argument", "call push once per element")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		arg, err := t.transformExpr(args[0])
		if err != nil {
			return pyast.Expr{}, true, err
		}
		return pyast.CallOf(pyast.AttrLoad(recv, "append"), arg), true, nil

	case "pop":
		if _, isLiteral := receiver.Data.(*ast.ArrayExpression); !isLiteral {
			return pyast.Expr{}, true, t.errAt(loc, diagnostics.ECodeArrayMethodAmbig,
				"pop on a receiver that is not provably an array literal", "this transformer does not infer types")
		}
		recv, err := t.transformExpr(receiver)
		if err != nil {
			return pyast.Expr{}, true, err
		}
		t.imp.AddRuntime("js_array_pop")
		return pyast.CallName("js_array_pop", recv), true, nil

	default:
		return pyast.Expr{}, false, nil
	}
}
