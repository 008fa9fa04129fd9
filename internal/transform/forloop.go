package transform

import (
	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/pyast"
)

// transformFor implements ForStatement (spec.md §4.5): SRC's three-clause
// for-loop has no TGT equivalent, so it desugars to
// [init statements] ++ [While(test, body ++ update statements)], with the
// update statements additionally spliced in just before every Continue
// that targets this loop directly (not a nested loop) — see
// transformContinue and the loopFrame pushed below.
func (t *Transformer) transformFor(s ast.Stmt, n *ast.ForStatement) ([]pyast.Stmt, error) {
	initStmts, err := t.transformForInit(n.Init)
	if err != nil {
		return nil, err
	}

	test := pyast.BoolConst(true)
	if !n.Test.IsNil() {
		test, err = t.wrapTruthy(n.Test)
		if err != nil {
			return nil, err
		}
	}

	updateStmts, err := t.transformForClauseExprOrNil(n.Update)
	if err != nil {
		return nil, err
	}

	t.pushLoop(loopFrame{id: s.LoopID, update: updateStmts})
	body, err := t.transformStmt(n.Body)
	t.popLoop()
	if err != nil {
		return nil, err
	}
	body = append(body, cloneStmts(updateStmts)...)

	whileStmt := pyast.Stmt{Data: &pyast.While{Test: test, Body: body}}
	return append(initStmts, whileStmt), nil
}

func (t *Transformer) transformForInit(init ast.Stmt) ([]pyast.Stmt, error) {
	if init.IsNil() {
		return nil, nil
	}
	switch n := init.Data.(type) {
	case *ast.VariableDeclaration:
		return t.transformVariableDeclaration(n)
	case *ast.ExpressionStatement:
		return t.transformForClauseExpr(n.Expression)
	default:
		return nil, t.unsupportedNode(init.Loc, "for-statement init clause")
	}
}

func (t *Transformer) transformForClauseExprOrNil(e ast.Expr) ([]pyast.Stmt, error) {
	if e.IsNil() {
		return nil, nil
	}
	return t.transformForClauseExpr(e)
}

// transformForClauseExpr implements the update (and, via transformForInit,
// init) clause of a for-statement: the one context where SequenceExpression
// is legal (spec.md §4.5), each comma-separated sub-expression expanding
// independently through the same rules a bare ExpressionStatement would use.
func (t *Transformer) transformForClauseExpr(e ast.Expr) ([]pyast.Stmt, error) {
	switch n := e.Data.(type) {
	case *ast.SequenceExpression:
		var out []pyast.Stmt
		for _, sub := range n.Expressions {
			ss, err := t.transformForClauseExpr(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, ss...)
		}
		return out, nil
	case *ast.UpdateExpression:
		return t.expandUpdateStmt(e.Loc, n)
	case *ast.AssignmentExpression:
		return t.expandAssignmentStmt(n)
	default:
		v, err := t.transformExpr(e)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{{Data: &pyast.ExprStmt{Value: v}}}, nil
	}
}
