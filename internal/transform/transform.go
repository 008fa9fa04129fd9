// Package transform is component C6, the transformer described in
// spec.md §4.5: it walks an already-tagged SRC AST (internal/ast, tagged by
// internal/tagger) and produces a TGT AST (internal/pyast), driving the
// scope mapper (internal/scope), import manager (internal/imports), and
// runtime companion (internal/runtime) along the way, and raising
// diagnostics (internal/diagnostics) for anything outside the supported
// subset. This file holds the entry point, statement dispatch, the loop
// stack and continue-update injection (transformContinue); forloop.go
// holds the for-loop desugaring, function.go the function hoisting,
// switchstmt.go the switch flattening, assign.go the assignment/update
// expansion, expr.go expression dispatch and call.go the CallExpression
// library dispatch table (spec.md §4.5's big callee-pattern table).
package transform

import (
	"fmt"
	"strings"

	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/imports"
	"github.com/r-werner/es5topy/internal/pyast"
	"github.com/r-werner/es5topy/internal/runtime"
	"github.com/r-werner/es5topy/internal/scope"
)

// loopFrame is one entry of the active-loop stack used for continue-update
// injection (spec.md §4.5, ForStatement). update is non-nil only for
// for-statements; while/for-in push a frame with a nil update so a
// continue's "innermost enclosing loop" check still finds them (and
// correctly does *not* inject anything).
type loopFrame struct {
	id     int
	update []pyast.Stmt
}

// Transformer holds all per-transform transient state named in spec.md §3:
// the scope stack (via scope.Mapper), the loop stack, the temp counter
// (reset per function), and the switch-discriminant counter (global). A
// Transformer is single-use per spec.md §5 ("no shared mutable state
// crosses calls"); construct a fresh one with New for each Program.
type Transformer struct {
	file        string
	sourceLines []string

	scope *scope.Mapper
	imp   *imports.Manager

	loopStack         []loopFrame
	tempCounter       int
	switchDiscCounter int
}

func New(file string, source string) *Transformer {
	return &Transformer{
		file:        file,
		sourceLines: strings.Split(source, "\n"),
		scope:       scope.NewMapper(),
		imp:         imports.NewManager(),
	}
}

// TransformProgram is the Program visitor (spec.md §4.5): it emits a
// Module whose body is [generated imports] ++ [transformed top-level
// statements], draining the import manager only after the body has been
// transformed so it reflects actual usage.
func (t *Transformer) TransformProgram(prog *ast.Program, runtimeModule string) (*pyast.Module, error) {
	if runtimeModule == "" {
		runtimeModule = runtime.DefaultModuleName
	}

	body, err := t.transformStmtList(prog.Body)
	if err != nil {
		return nil, err
	}

	importStmts := t.buildImportStmts(runtimeModule)
	return &pyast.Module{Body: append(importStmts, body...)}, nil
}

func (t *Transformer) buildImportStmts(runtimeModule string) []pyast.Stmt {
	stdlibModules, stdlibAliases, runtimeNames := t.imp.Drain()

	var stmts []pyast.Stmt
	for i := range stdlibModules {
		stmts = append(stmts, pyast.Stmt{Data: &pyast.Import{Module: stdlibModules[i], Alias: stdlibAliases[i]}})
	}
	if len(runtimeNames) > 0 {
		stmts = append(stmts, pyast.Stmt{Data: &pyast.ImportFrom{Module: runtimeModule, Names: runtimeNames}})
	}
	return stmts
}

// ---- statement dispatch ----

func (t *Transformer) transformStmtList(list []ast.Stmt) ([]pyast.Stmt, error) {
	var out []pyast.Stmt
	for _, s := range list {
		ss, err := t.transformStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ss...)
	}
	return out, nil
}

func (t *Transformer) transformStmt(s ast.Stmt) ([]pyast.Stmt, error) {
	switch n := s.Data.(type) {
	case *ast.ExpressionStatement:
		return t.transformExpressionStatement(n.Expression)

	case *ast.BlockStatement:
		return t.transformStmtList(n.Body)

	case *ast.EmptyStatement:
		return nil, nil

	case *ast.VariableDeclaration:
		return t.transformVariableDeclaration(n)

	case *ast.FunctionDeclaration:
		bindingName := t.scope.Declare(n.Name)
		def, err := t.transformFunctionLike(bindingName, "", n.Params, n.Body)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{{Data: def}}, nil

	case *ast.ReturnStatement:
		if n.Argument.IsNil() {
			return []pyast.Stmt{{Data: &pyast.Return{Value: t.jsUndefinedRef()}}}, nil
		}
		v, err := t.transformExpr(n.Argument)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{{Data: &pyast.Return{Value: v}}}, nil

	case *ast.IfStatement:
		return t.transformIf(n)

	case *ast.WhileStatement:
		return t.transformWhile(s, n)

	case *ast.ForStatement:
		return t.transformFor(s, n)

	case *ast.ForInStatement:
		return t.transformForIn(s, n)

	case *ast.SwitchStatement:
		return t.transformSwitch(s, n)

	case *ast.BreakStatement:
		return []pyast.Stmt{{Data: &pyast.Break{}}}, nil

	case *ast.ContinueStatement:
		return t.transformContinue(s)

	default:
		return nil, t.unsupportedNode(s.Loc, fmt.Sprintf("%T", n))
	}
}

// transformExpressionStatement implements the statement-context rewrites
// spec.md §4.5 specifies for AssignmentExpression, UpdateExpression, and
// (indirectly, at top level of an expression-statement) SequenceExpression
// — none of these can be expressed as a single TGT expression node, so an
// ExpressionStatement is the one place the transformer is allowed to
// expand one SRC statement into several TGT statements for them.
func (t *Transformer) transformExpressionStatement(e ast.Expr) ([]pyast.Stmt, error) {
	switch n := e.Data.(type) {
	case *ast.AssignmentExpression:
		return t.expandAssignmentStmt(n)
	case *ast.UpdateExpression:
		return t.expandUpdateStmt(e.Loc, n)
	case *ast.SequenceExpression:
		var out []pyast.Stmt
		for _, sub := range n.Expressions {
			ss, err := t.transformExpressionStatement(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, ss...)
		}
		return out, nil
	default:
		v, err := t.transformExpr(e)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{{Data: &pyast.ExprStmt{Value: v}}}, nil
	}
}

func (t *Transformer) transformVariableDeclaration(n *ast.VariableDeclaration) ([]pyast.Stmt, error) {
	var out []pyast.Stmt
	for _, d := range n.Declarations {
		ident, ok := d.ID.Data.(*ast.Identifier)
		if !ok {
			return nil, t.errAt(d.ID.Loc, diagnostics.ECodeVarDestructure,
				"destructuring variable declarations are not supported", "bind a single identifier per declarator")
		}
		name := t.scope.Declare(ident.Name)

		if fe, ok := d.Init.Data.(*ast.FunctionExpression); ok {
			def, err := t.transformFunctionLike(name, fe.Name, fe.Params, fe.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, pyast.Stmt{Data: def})
			continue
		}

		var value pyast.Expr
		if d.Init.IsNil() {
			value = t.jsUndefinedRef()
		} else {
			v, err := t.transformExpr(d.Init)
			if err != nil {
				return nil, err
			}
			value = v
		}
		out = append(out, pyast.AssignOne(pyast.NameStore(name), value))
	}
	return out, nil
}

func (t *Transformer) transformIf(n *ast.IfStatement) ([]pyast.Stmt, error) {
	test, err := t.wrapTruthy(n.Test)
	if err != nil {
		return nil, err
	}
	body, err := t.transformStmt(n.Consequent)
	if err != nil {
		return nil, err
	}
	var orelse []pyast.Stmt
	if !n.Alternate.IsNil() {
		orelse, err = t.transformStmt(n.Alternate)
		if err != nil {
			return nil, err
		}
	}
	return []pyast.Stmt{{Data: &pyast.If{Test: test, Body: body, Orelse: orelse}}}, nil
}

func (t *Transformer) transformWhile(s ast.Stmt, n *ast.WhileStatement) ([]pyast.Stmt, error) {
	test, err := t.wrapTruthy(n.Test)
	if err != nil {
		return nil, err
	}
	t.pushLoop(loopFrame{id: s.LoopID})
	body, err := t.transformStmt(n.Body)
	t.popLoop()
	if err != nil {
		return nil, err
	}
	return []pyast.Stmt{{Data: &pyast.While{Test: test, Body: body}}}, nil
}

func (t *Transformer) transformForIn(s ast.Stmt, n *ast.ForInStatement) ([]pyast.Stmt, error) {
	right, err := t.transformExpr(n.Right)
	if err != nil {
		return nil, err
	}
	t.imp.AddRuntime("js_for_in_keys")
	iter := pyast.CallName("js_for_in_keys", right)

	var targetName string
	switch left := n.Left.Data.(type) {
	case *ast.VariableDeclaration:
		if len(left.Declarations) != 1 {
			return nil, t.errAt(n.Left.Loc, diagnostics.ECodeVarDestructure,
				"for-in target must declare exactly one identifier", "")
		}
		ident, ok := left.Declarations[0].ID.Data.(*ast.Identifier)
		if !ok {
			return nil, t.errAt(left.Declarations[0].ID.Loc, diagnostics.ECodeVarDestructure,
				"destructuring for-in targets are not supported", "")
		}
		targetName = t.scope.Declare(ident.Name)
	case *ast.ExpressionStatement:
		ident, ok := left.Expression.Data.(*ast.Identifier)
		if !ok {
			return nil, t.errAt(left.Expression.Loc, diagnostics.ECodeVarDestructure,
				"destructuring for-in targets are not supported", "")
		}
		targetName = t.scope.Lookup(ident.Name)
	default:
		return nil, t.unsupportedNode(n.Left.Loc, fmt.Sprintf("%T", left))
	}

	t.pushLoop(loopFrame{id: s.LoopID})
	body, err := t.transformStmt(n.Body)
	t.popLoop()
	if err != nil {
		return nil, err
	}

	return []pyast.Stmt{{Data: &pyast.For{Target: pyast.NameStore(targetName), Iter: iter, Body: body}}}, nil
}

func (t *Transformer) transformContinue(s ast.Stmt) ([]pyast.Stmt, error) {
	if len(t.loopStack) > 0 {
		top := t.loopStack[len(t.loopStack)-1]
		if top.id == s.InnermostLoop && top.update != nil {
			out := cloneStmts(top.update)
			out = append(out, pyast.Stmt{Data: &pyast.Continue{}})
			return out, nil
		}
	}
	return []pyast.Stmt{{Data: &pyast.Continue{}}}, nil
}

func (t *Transformer) pushLoop(f loopFrame) { t.loopStack = append(t.loopStack, f) }
func (t *Transformer) popLoop()             { t.loopStack = t.loopStack[:len(t.loopStack)-1] }

func cloneStmts(in []pyast.Stmt) []pyast.Stmt {
	out := make([]pyast.Stmt, len(in))
	copy(out, in)
	return out
}

// ---- helpers shared across files ----

func (t *Transformer) wrapTruthy(e ast.Expr) (pyast.Expr, error) {
	v, err := t.transformExpr(e)
	if err != nil {
		return pyast.Expr{}, err
	}
	t.imp.AddRuntime("js_truthy")
	return pyast.CallName("js_truthy", v), nil
}

func (t *Transformer) jsUndefinedRef() pyast.Expr {
	t.imp.AddRuntime("JSUndefined")
	return pyast.NameLoad("JSUndefined")
}

func (t *Transformer) mathAliasRef() pyast.Expr {
	t.imp.AddStdlib("math")
	return pyast.NameLoad(imports.StdlibAlias("math"))
}

// toIndex coerces e to a Python int at emission time, for use where the
// receiver is unambiguously a sequence needing an integer subscript/slice
// bound (string methods) rather than a possibly-dict computed member, where
// the key might legitimately be a string (spec.md §1's no-type-inference
// rule means a generic computed MemberExpression can't tell the two apart).
func toIndex(e pyast.Expr) pyast.Expr {
	return pyast.CallName("int", e)
}

func (t *Transformer) newTemp() string {
	t.tempCounter++
	return fmt.Sprintf("__js_tmp%d", t.tempCounter)
}

func (t *Transformer) newSwitchDisc() string {
	t.switchDiscCounter++
	return fmt.Sprintf("__js_switch_disc_%d", t.switchDiscCounter)
}

func (t *Transformer) errAt(loc ast.Loc, code diagnostics.Code, message, hint string) error {
	return diagnostics.UnsupportedFeatureError(t.file, loc, t.sourceLines, code, message, hint)
}

func (t *Transformer) unsupportedNode(loc ast.Loc, kind string) error {
	return diagnostics.UnsupportedNodeError(t.file, loc, t.sourceLines, kind)
}

// augRuntimeFn maps an augmented-assignment/update operator onto the
// runtime arithmetic helper it desugars to (spec.md §4.1's js_add..js_mod
// table, referenced from §4.5's AssignmentExpression/UpdateExpression
// contracts).
func augRuntimeFn(op ast.AssignmentOperator) (string, error) {
	switch op {
	case ast.AssignAdd:
		return "js_add", nil
	case ast.AssignSub:
		return "js_sub", nil
	case ast.AssignMul:
		return "js_mul", nil
	case ast.AssignDiv:
		return "js_div", nil
	case ast.AssignMod:
		return "js_mod", nil
	default:
		return "", fmt.Errorf("transform: not an augmented-assignment operator: %s", op)
	}
}
