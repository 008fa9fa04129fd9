// Package tagger is component C5, the ancestry pre-pass described in
// spec.md §4.4. It runs before the transformer (C6) and decorates the SRC
// tree in place with loop/switch ancestry, validating break/continue
// placement along the way. The in-place mutation follows the "Source
// patterns requiring re-architecture" note in spec.md §9 (a side-table is
// the alternative for parsers whose AST can't be mutated; this one owns
// its tree uniquely per spec.md §5, so in-place tagging is used directly,
// matching the teacher's habit of decorating AST nodes in place during a
// single-owner pass rather than building a parallel map).
package tagger

import (
	"fmt"

	"github.com/r-werner/es5topy/internal/ast"
	"github.com/r-werner/es5topy/internal/diagnostics"
)

// frame is one entry of the combined loop/switch ancestry stack. Loops and
// switches share one stack so that "the innermost enclosing iteration
// construct" (spec.md §4.4) can be read straight off its top, rather than
// reconstructed by comparing two independent stacks' depths.
type frame struct {
	isSwitch bool
	loopID   int // 0 for switch frames
}

// Tagger carries the ancestry stack for one Program (or one function body —
// see the FunctionDeclaration case in tagStmt, which starts a fresh Tagger
// since SRC's break/continue never cross a function boundary).
type Tagger struct {
	file        string
	sourceLines []string
	nextLoopID  *int // shared across nested function Taggers so ids stay unique module-wide
	stack       []frame
}

func New(file string, sourceLines []string) *Tagger {
	zero := 0
	return &Tagger{file: file, sourceLines: sourceLines, nextLoopID: &zero}
}

// Tag runs the pre-pass over an entire program, mutating it in place.
func (t *Tagger) Tag(prog *ast.Program) error {
	for i := range prog.Body {
		if err := t.tagStmt(&prog.Body[i]); err != nil {
			return err
		}
	}
	return nil
}

// innermostLoopID returns the id of the nearest enclosing loop, skipping
// over any intervening switch frames — a continue always targets the
// enclosing loop, never a switch, regardless of how many switches sit
// between it and that loop.
func (t *Tagger) innermostLoopID() int {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if !t.stack[i].isSwitch {
			return t.stack[i].loopID
		}
	}
	return 0
}

// stamp records the current innermost-loop id on every statement node
// visited, so the for-loop continue-injection pass in C6 can recognize
// "this continue belongs to this for-loop" without re-walking ancestry.
func (t *Tagger) stamp(s *ast.Stmt) {
	s.InnermostLoop = t.innermostLoopID()
	s.InnermostIsSwitch = len(t.stack) > 0 && t.stack[len(t.stack)-1].isSwitch
}

func (t *Tagger) tagStmt(s *ast.Stmt) error {
	t.stamp(s)

	switch n := s.Data.(type) {
	case *ast.BlockStatement:
		for i := range n.Body {
			if err := t.tagStmt(&n.Body[i]); err != nil {
				return err
			}
		}

	case *ast.IfStatement:
		if err := t.tagStmt(&n.Consequent); err != nil {
			return err
		}
		if !n.Alternate.IsNil() {
			if err := t.tagStmt(&n.Alternate); err != nil {
				return err
			}
		}

	case *ast.WhileStatement:
		return t.tagLoop(s, &n.Body)

	case *ast.ForStatement:
		return t.tagLoop(s, &n.Body)

	case *ast.ForInStatement:
		return t.tagLoop(s, &n.Body)

	case *ast.SwitchStatement:
		t.stack = append(t.stack, frame{isSwitch: true})
		for i := range n.Cases {
			for j := range n.Cases[i].Consequent {
				if err := t.tagStmt(&n.Cases[i].Consequent[j]); err != nil {
					t.stack = t.stack[:len(t.stack)-1]
					return err
				}
			}
		}
		t.stack = t.stack[:len(t.stack)-1]

	case *ast.FunctionDeclaration:
		// A nested function resets ancestry: a break/continue inside it can
		// never target an enclosing loop or switch, matching SRC's own
		// function-boundary scoping rule.
		if err := t.tagFunctionBody(n.Body); err != nil {
			return err
		}

	case *ast.VariableDeclaration:
		for i := range n.Declarations {
			if fe, ok := n.Declarations[i].Init.Data.(*ast.FunctionExpression); ok {
				if err := t.tagFunctionBody(fe.Body); err != nil {
					return err
				}
			}
		}

	case *ast.BreakStatement:
		if len(t.stack) == 0 {
			return t.err(s.Loc, diagnostics.ECodeBreakOutside,
				"'break' with no enclosing loop or switch", "")
		}

	case *ast.ContinueStatement:
		if t.innermostLoopID() == 0 {
			return t.err(s.Loc, diagnostics.ECodeContinueOutside,
				"'continue' with no enclosing loop", "")
		}
		if len(t.stack) > 0 && t.stack[len(t.stack)-1].isSwitch {
			return t.err(s.Loc, diagnostics.ECodeContinueInSwitch,
				"'continue' whose innermost enclosing iteration construct is a switch",
				"move the continue inside the loop that encloses this switch")
		}

	case *ast.ExpressionStatement, *ast.ReturnStatement, *ast.EmptyStatement:
		// Leaves with respect to ancestry: nothing further to tag.

	default:
		return t.err(s.Loc, diagnostics.ECodeUnsupportedNode,
			fmt.Sprintf("unsupported statement kind %T during ancestry tagging", n), "")
	}

	return nil
}

// tagFunctionBody tags a nested function's body with a fresh ancestry stack
// (a break/continue inside it can never target an enclosing loop or switch)
// while still minting loop ids from the shared, module-wide counter.
func (t *Tagger) tagFunctionBody(body []ast.Stmt) error {
	inner := &Tagger{file: t.file, sourceLines: t.sourceLines, nextLoopID: t.nextLoopID}
	for i := range body {
		if err := inner.tagStmt(&body[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tagger) tagLoop(s *ast.Stmt, body *ast.Stmt) error {
	*t.nextLoopID++
	id := *t.nextLoopID
	s.LoopID = id
	t.stack = append(t.stack, frame{loopID: id})
	err := t.tagStmt(body)
	t.stack = t.stack[:len(t.stack)-1]
	return err
}

func (t *Tagger) err(loc ast.Loc, code diagnostics.Code, message, hint string) error {
	return diagnostics.UnsupportedFeatureError(t.file, loc, t.sourceLines, code, message, hint)
}
