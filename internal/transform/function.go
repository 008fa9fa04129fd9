package transform

import (
	"sort"

	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyast"
)

// transformFunctionLike implements the shared body of FunctionDeclaration
// and the (expansion) FunctionExpression-as-initializer case (spec.md
// §4.5, SPEC_FULL.md §5). bindingName is the already-sanitized TGT name
// the resulting def is bound to — chosen by the caller, since SRC has two
// different ways of naming a function (the declaration's own name, or the
// variable it's assigned to) and both resolve identically from here on.
// selfName, if non-empty, is the SRC name of a *named function expression*
// that must additionally resolve to bindingName from inside its own body
// (self-recursion) without being visible anywhere else.
//
// Scope/params: enters a fresh scope, declares sanitized parameter names
// (rejecting any non-identifier parameter with E_PARAM_DESTRUCTURE), resets
// the temp counter and loop stack (nested functions never share either with
// their enclosing function), hoists every `var` in the body not shadowed
// by a parameter and not belonging to a nested function, emitting
// alphabetized `= JSUndefined` assigns before the (otherwise normally
// transformed) body.
func (t *Transformer) transformFunctionLike(bindingName, selfName string, params []ast.Expr, body []ast.Stmt) (*pyast.FunctionDef, error) {
	t.scope.EnterScope()
	savedTemp := t.tempCounter
	savedLoopStack := t.loopStack
	t.tempCounter = 0
	t.loopStack = nil

	restore := func() {
		t.scope.ExitScope()
		t.tempCounter = savedTemp
		t.loopStack = savedLoopStack
	}

	if selfName != "" {
		t.scope.DeclareAs(selfName, bindingName)
	}

	args := make([]string, len(params))
	paramNames := make(map[string]bool, len(params))
	for i, p := range params {
		ident, ok := p.Data.(*ast.Identifier)
		if !ok {
			restore()
			return nil, t.errAt(p.Loc, diagnostics.ECodeParamDestructure,
				"destructured function parameters are not supported", "bind a single identifier per parameter")
		}
		args[i] = t.scope.Declare(ident.Name)
		paramNames[ident.Name] = true
	}

	hoisted := collectVarNames(body, paramNames)
	sort.Strings(hoisted)

	var out []pyast.Stmt
	for _, raw := range hoisted {
		sanitized := t.scope.Declare(raw)
		out = append(out, pyast.AssignOne(pyast.NameStore(sanitized), t.jsUndefinedRef()))
	}

	bodyStmts, err := t.transformStmtList(body)
	restore()
	if err != nil {
		return nil, err
	}

	out = append(out, bodyStmts...)
	return &pyast.FunctionDef{Name: bindingName, Args: args, Body: out}, nil
}

// collectVarNames walks a function body collecting every `var` name
// declared anywhere inside it — including nested blocks, if/while/for/
// for-in/switch bodies — but never descending into a nested function's own
// body (SRC's function-scoped var hoisting rule), and excluding names
// already bound as parameters.
func collectVarNames(body []ast.Stmt, exclude map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if exclude[name] || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	var walkStmt func(s ast.Stmt)
	walkStmt = func(s ast.Stmt) {
		switch n := s.Data.(type) {
		case *ast.BlockStatement:
			for _, c := range n.Body {
				walkStmt(c)
			}
		case *ast.VariableDeclaration:
			for _, d := range n.Declarations {
				if ident, ok := d.ID.Data.(*ast.Identifier); ok {
					add(ident.Name)
				}
			}
		case *ast.IfStatement:
			walkStmt(n.Consequent)
			if !n.Alternate.IsNil() {
				walkStmt(n.Alternate)
			}
		case *ast.WhileStatement:
			walkStmt(n.Body)
		case *ast.ForStatement:
			if !n.Init.IsNil() {
				if decl, ok := n.Init.Data.(*ast.VariableDeclaration); ok {
					for _, d := range decl.Declarations {
						if ident, ok := d.ID.Data.(*ast.Identifier); ok {
							add(ident.Name)
						}
					}
				}
			}
			walkStmt(n.Body)
		case *ast.ForInStatement:
			if decl, ok := n.Left.Data.(*ast.VariableDeclaration); ok {
				for _, d := range decl.Declarations {
					if ident, ok := d.ID.Data.(*ast.Identifier); ok {
						add(ident.Name)
					}
				}
			}
			walkStmt(n.Body)
		case *ast.SwitchStatement:
			for _, c := range n.Cases {
				for _, cs := range c.Consequent {
					walkStmt(cs)
				}
			}
		case *ast.FunctionDeclaration:
			// Function boundary: its own vars hoist into its own body, not here.
		default:
			// ExpressionStatement, ReturnStatement, Break/Continue/Empty: no vars.
		}
	}

	for _, s := range body {
		walkStmt(s)
	}
	return out
}
