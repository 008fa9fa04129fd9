package transform

import (
	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyast"
)

// caseGroup is one disjunction of test expressions sharing a single
// consequent, after contiguous empty ("fallthrough") cases have been
// merged forward onto the next non-empty case (spec.md §4.5).
type caseGroup struct {
	tests      []ast.Expr
	consequent []ast.Stmt
}

// transformSwitch implements SwitchStatement (spec.md §4.5): the
// discriminant is cached once into a named temp, then flattened into
// while True: if/elif/.../else: ... with a trailing break appended after
// the whole chain so falling off the end of any case (or matching nothing)
// exits the wrapper exactly once, matching SRC's non-fallthrough switch
// semantics given the E_SWITCH_FALLTHROUGH validation below.
//
// default is always rendered as the outermost else, regardless of where it
// appears among the source's cases; a default case that is not the last
// case in source order is rejected, since this transformer does not model
// the (rare) SRC pattern of falling *through* other case labels into a
// default positioned in the middle of the case list.
func (t *Transformer) transformSwitch(s ast.Stmt, n *ast.SwitchStatement) ([]pyast.Stmt, error) {
	discVal, err := t.transformExpr(n.Discriminant)
	if err != nil {
		return nil, err
	}
	discName := t.newSwitchDisc()
	stmts := []pyast.Stmt{pyast.AssignOne(pyast.NameStore(discName), discVal)}
	discRef := pyast.NameLoad(discName)

	var defaultCase *ast.SwitchCase
	nonDefault := make([]ast.SwitchCase, 0, len(n.Cases))
	for i := range n.Cases {
		c := n.Cases[i]
		if c.Test.IsNil() {
			if defaultCase != nil {
				return nil, t.errAt(c.Loc, diagnostics.ECodeUnsupportedFeature,
					"a switch statement may only have one default case", "")
			}
			if i != len(n.Cases)-1 {
				return nil, t.errAt(c.Loc, diagnostics.ECodeUnsupportedFeature,
					"a default case must be the last case in the switch", "move default to the end")
			}
			defaultCase = &c
			continue
		}
		nonDefault = append(nonDefault, c)
	}

	var groups []caseGroup
	var pending []ast.Expr
	for i, c := range nonDefault {
		pending = append(pending, c.Test)
		isLast := i == len(nonDefault)-1
		// Trailing empty cases merge forward onto the default when there is
		// one: left ungrouped, their values fall through to the else branch.
		if len(c.Consequent) > 0 || (isLast && defaultCase == nil) {
			if err := t.checkSwitchTerminates(c); err != nil {
				return nil, err
			}
			groups = append(groups, caseGroup{tests: pending, consequent: c.Consequent})
			pending = nil
		}
	}

	var defaultBody []pyast.Stmt
	if defaultCase != nil {
		defaultBody, err = t.transformStmtList(defaultCase.Consequent)
		if err != nil {
			return nil, err
		}
	}

	if len(groups) == 0 {
		// Only a default case (or no cases at all): its body, if any, always
		// runs — there is nothing to branch on.
		stmts = append(stmts, defaultBody...)
	} else {
		chain, err := t.buildSwitchChain(groups, 0, discRef, defaultBody)
		if err != nil {
			return nil, err
		}
		if chain != nil {
			stmts = append(stmts, *chain)
		}
	}
	stmts = append(stmts, pyast.Stmt{Data: &pyast.Break{}})

	whileStmt := pyast.Stmt{Data: &pyast.While{Test: pyast.BoolConst(true), Body: stmts}}
	return []pyast.Stmt{whileStmt}, nil
}

// buildSwitchChain recursively builds the if/elif/.../else cascade. Each
// elif is modeled as a single nested If inside the previous If's Orelse —
// pyprinter recognizes that shape and renders it as a literal `elif`.
func (t *Transformer) buildSwitchChain(groups []caseGroup, i int, discRef pyast.Expr, defaultBody []pyast.Stmt) (*pyast.Stmt, error) {
	if i >= len(groups) {
		return nil, nil
	}

	g := groups[i]
	test, err := t.buildSwitchTest(discRef, g.tests)
	if err != nil {
		return nil, err
	}
	body, err := t.transformStmtList(g.consequent)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		body = []pyast.Stmt{{Data: &pyast.Pass{}}}
	}

	var orelse []pyast.Stmt
	if i == len(groups)-1 {
		orelse = defaultBody
	} else {
		next, err := t.buildSwitchChain(groups, i+1, discRef, defaultBody)
		if err != nil {
			return nil, err
		}
		if next != nil {
			orelse = []pyast.Stmt{*next}
		}
	}

	return &pyast.Stmt{Data: &pyast.If{Test: test, Body: body, Orelse: orelse}}, nil
}

func (t *Transformer) buildSwitchTest(discRef pyast.Expr, tests []ast.Expr) (pyast.Expr, error) {
	eqs := make([]pyast.Expr, len(tests))
	for i, te := range tests {
		v, err := t.transformExpr(te)
		if err != nil {
			return pyast.Expr{}, err
		}
		t.imp.AddRuntime("js_strict_eq")
		eqs[i] = pyast.CallName("js_strict_eq", discRef, v)
	}
	if len(eqs) == 1 {
		return eqs[0], nil
	}
	return pyast.Expr{Data: &pyast.BoolOp{Op: pyast.BoolOr, Values: eqs}}, nil
}

// checkSwitchTerminates implements the E_SWITCH_FALLTHROUGH check (spec.md
// §4.5, §7): a non-empty case's last statement, on every control path,
// must be a break/return/continue — otherwise SRC's fallthrough semantics
// (which this transformer does not model) would silently be lost.
func (t *Transformer) checkSwitchTerminates(c ast.SwitchCase) error {
	if len(c.Consequent) == 0 {
		return nil
	}
	if !stmtsTerminate(c.Consequent) {
		return t.errAt(c.Loc, diagnostics.ECodeSwitchFallthrough,
			"case does not end in break/return/continue on every path",
			"SRC-style fallthrough between non-empty cases is not supported")
	}
	return nil
}

func stmtsTerminate(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	return stmtTerminates(stmts[len(stmts)-1])
}

func stmtTerminates(s ast.Stmt) bool {
	switch n := s.Data.(type) {
	case *ast.BreakStatement, *ast.ReturnStatement, *ast.ContinueStatement:
		return true
	case *ast.BlockStatement:
		return stmtsTerminate(n.Body)
	case *ast.IfStatement:
		if n.Alternate.IsNil() {
			return false
		}
		return stmtTerminates(n.Consequent) && stmtTerminates(n.Alternate)
	default:
		return false
	}
}
