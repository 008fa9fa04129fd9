// Package diagnostics is component C7 ("Error surface"). It is adapted from
// the teacher's internal/logger: the same Msg/MsgData/MsgLocation split and
// the same caret-and-snippet rendering strategy (teacher's detailStruct),
// trimmed to match this project's much narrower error model — spec.md §7
// has no warnings, no message limit, and no per-message log-level override,
// because every diagnostic here is fatal and the first one wins
// ("no partial output is emitted", spec.md §8 scenario 6).
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/r-werner/es5topy/internal/ast"
)

// Location mirrors spec.md §6's diagnostics surface: "file:line:column and a
// short source snippet with a caret pointing at the column".
type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based
	LineText string
}

// Diagnostic is the unified shape for both error categories named in
// spec.md §4.6: UnsupportedNodeError (Code == ECodeUnsupportedNode) and
// UnsupportedFeatureError (any other code). Both "carry: code, message,
// location(line,column), optional hint" verbatim.
type Diagnostic struct {
	Code     Code
	Message  string
	Location Location
	Hint     string
}

// Error implements the standard error interface so a Diagnostic can
// propagate through ordinary Go error returns, per spec.md §4.6: "No error
// is swallowed by the transformer; every error propagates to the driver."
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic in the file:line:column + caret-snippet
// shape spec.md §6 requires downstream tooling to parse. withColor adds the
// teacher's ANSI color escapes (internal/diagnostics/term_*.go decides
// whether the destination stream supports them).
func (d *Diagnostic) Format(withColor bool) string {
	var b strings.Builder

	if withColor {
		fmt.Fprintf(&b, "%s%s:%d:%d:%s %s%serror:%s %s [%s]\n",
			colorBold, d.Location.File, d.Location.Line, d.Location.Column+1, colorReset,
			"", colorRed, colorReset, d.Message, d.Code)
	} else {
		fmt.Fprintf(&b, "%s:%d:%d: error: %s [%s]\n",
			d.Location.File, d.Location.Line, d.Location.Column+1, d.Message, d.Code)
	}

	if d.Location.LineText != "" {
		line := stripTrailingNewline(d.Location.LineText)
		col := clamp(d.Column(line))
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString("^")
		b.WriteByte('\n')
	}

	if d.Hint != "" {
		fmt.Fprintf(&b, "hint: %s\n", d.Hint)
	}

	return b.String()
}

func (d *Diagnostic) Column(line string) int {
	col := d.Location.Column
	if col > len(line) {
		col = len(line)
	}
	return col
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func stripTrailingNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// FromLoc builds a Diagnostic anchored at an SRC AST location. sourceLines
// is the full source split into lines (1-based access via Line-1) so the
// caret renderer can show the offending line, matching the teacher's
// Source.Contents-backed RangeData/LocationOrNil helpers.
func FromLoc(file string, loc ast.Loc, sourceLines []string, code Code, message string, hint string) *Diagnostic {
	line := loc.Start.Line
	lineText := ""
	if line >= 1 && line <= len(sourceLines) {
		lineText = sourceLines[line-1]
	}
	return &Diagnostic{
		Code:    code,
		Message: message,
		Hint:    hint,
		Location: Location{
			File:     file,
			Line:     line,
			Column:   loc.Start.Column,
			LineText: lineText,
		},
	}
}

// UnsupportedNodeError is raised when "AST node kind has no visitor"
// (spec.md §7).
func UnsupportedNodeError(file string, loc ast.Loc, sourceLines []string, nodeKind string) *Diagnostic {
	return FromLoc(file, loc, sourceLines, ECodeUnsupportedNode,
		fmt.Sprintf("unsupported SRC node: %s", nodeKind), "")
}

// UnsupportedFeatureError is raised when "Visitor exists but specific form
// rejected" (spec.md §7).
func UnsupportedFeatureError(file string, loc ast.Loc, sourceLines []string, code Code, message string, hint string) *Diagnostic {
	return FromLoc(file, loc, sourceLines, code, message, hint)
}
