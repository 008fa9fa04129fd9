package transform

import (
	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyast"
)

// expandAssignmentStmt implements AssignmentExpression in statement context
// (spec.md §4.5): the one place a member target or an augmented operator
// can be expanded. A plain `=` to an identifier is a single Assign; an
// augmented op to an identifier reads-modifies-writes through the matching
// runtime helper; the (expansion) `obj.x += e` / `obj[k] += e` case
// (SPEC_FULL.md §5, E_MEMBER_AUGASSIGN) temp-caches the object (and key,
// if computed) so it's evaluated exactly once, then does a temp-read,
// runtime-call, and writeback through the same cached subscript.
func (t *Transformer) expandAssignmentStmt(n *ast.AssignmentExpression) ([]pyast.Stmt, error) {
	switch target := n.Target.Data.(type) {
	case *ast.Identifier:
		return t.expandIdentifierAssign(target, n.Operator, n.Value)
	case *ast.MemberExpression:
		return t.expandMemberAssign(target, n.Operator, n.Value)
	default:
		return nil, t.unsupportedNode(n.Target.Loc, "assignment target")
	}
}

func (t *Transformer) expandIdentifierAssign(target *ast.Identifier, op ast.AssignmentOperator, valueExpr ast.Expr) ([]pyast.Stmt, error) {
	name := t.scope.Lookup(target.Name)
	value, err := t.transformExpr(valueExpr)
	if err != nil {
		return nil, err
	}

	if op == ast.AssignPlain {
		return []pyast.Stmt{pyast.AssignOne(pyast.NameStore(name), value)}, nil
	}

	fn, err := augRuntimeFn(op)
	if err != nil {
		return nil, err
	}
	t.imp.AddRuntime(fn)
	rhs := pyast.CallName(fn, pyast.NameLoad(name), value)
	return []pyast.Stmt{pyast.AssignOne(pyast.NameStore(name), rhs)}, nil
}

func (t *Transformer) expandMemberAssign(target *ast.MemberExpression, op ast.AssignmentOperator, valueExpr ast.Expr) ([]pyast.Stmt, error) {
	objExpr, err := t.transformExpr(target.Object)
	if err != nil {
		return nil, err
	}
	objTemp := t.newTemp()
	stmts := []pyast.Stmt{pyast.AssignOne(pyast.NameStore(objTemp), objExpr)}
	objRef := pyast.NameLoad(objTemp)

	var keyLoad pyast.Expr
	if target.Computed {
		keyExpr, err := t.transformExpr(target.Property)
		if err != nil {
			return nil, err
		}
		keyTemp := t.newTemp()
		stmts = append(stmts, pyast.AssignOne(pyast.NameStore(keyTemp), keyExpr))
		keyLoad = pyast.NameLoad(keyTemp)
	} else {
		prop, ok := target.Property.Data.(*ast.Identifier)
		if !ok {
			return nil, t.unsupportedNode(target.Property.Loc, "member property")
		}
		keyLoad = pyast.StrConst(prop.Name)
	}

	value, err := t.transformExpr(valueExpr)
	if err != nil {
		return nil, err
	}

	storeTarget := pyast.Expr{Data: &pyast.Subscript{Value: objRef, Slice: keyLoad, Ctx: pyast.Store}}

	if op == ast.AssignPlain {
		stmts = append(stmts, pyast.AssignOne(storeTarget, value))
		return stmts, nil
	}

	fn, err := augRuntimeFn(op)
	if err != nil {
		return nil, err
	}
	t.imp.AddRuntime(fn)
	currentLoad := pyast.Expr{Data: &pyast.Subscript{Value: objRef, Slice: keyLoad, Ctx: pyast.Load}}
	rhs := pyast.CallName(fn, currentLoad, value)
	stmts = append(stmts, pyast.AssignOne(storeTarget, rhs))
	return stmts, nil
}

// expandUpdateStmt implements UpdateExpression in statement (or for-update
// clause) context (spec.md §4.5): `x++`/`x--` (prefix or postfix — the
// distinction only matters in value position, which is rejected) lowers to
// a read-modify-write through js_add/js_sub with a literal 1. A member
// target is never supported (E_UPDATE_MEMBER): unlike AssignmentExpression,
// SPEC_FULL.md's expansion only extended E_MEMBER_AUGASSIGN, not this code.
func (t *Transformer) expandUpdateStmt(loc ast.Loc, n *ast.UpdateExpression) ([]pyast.Stmt, error) {
	ident, ok := n.Argument.Data.(*ast.Identifier)
	if !ok {
		return nil, t.errAt(loc, diagnostics.ECodeUpdateMember,
			"'++'/'--' on a member expression is not supported", "rewrite as obj[k] = obj[k] + 1")
	}
	name := t.scope.Lookup(ident.Name)
	fn := "js_add"
	if n.Operator == ast.UpdateDecrement {
		fn = "js_sub"
	}
	t.imp.AddRuntime(fn)
	rhs := pyast.CallName(fn, pyast.NameLoad(name), pyast.IntConst(1))
	return []pyast.Stmt{pyast.AssignOne(pyast.NameStore(name), rhs)}, nil
}
