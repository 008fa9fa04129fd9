// Package scope is component C3: the identifier sanitizer and scope mapper
// described in spec.md §4.2. It is grounded on two teacher packages: the
// reserved-word/rename strategy mirrors internal/js_ident.go's
// ForceValidIdentifier (pick a deterministic, collision-safe rewritten
// name instead of rejecting), and the scope-stack push/pop/lookup shape
// mirrors internal/renamer's handling of nested lexical scopes — except
// where the teacher renames to avoid minifier collisions, this package
// renames to avoid colliding with TGT reserved words.
package scope

import "strings"

// reservedWords is the closed set of TGT keywords and literal names that a
// raw SRC identifier must not collide with (spec.md §4.2). A Python-3.8-class
// target language's keyword list, which includes the three literal names SRC
// itself does not have (True/False/None correspond to SRC's true/false/null —
// SRC identifiers bearing those spellings would otherwise shadow TGT
// literals), plus the two extra names "print" and "exec".
var reservedWords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"print": true, "exec": true,
}

// Sanitize implements spec.md §4.2's sanitize(raw): append "_js" when raw
// collides with a TGT reserved word, else return raw unchanged.
func Sanitize(raw string) string {
	if reservedWords[raw] {
		return raw + "_js"
	}
	return raw
}

// scopeFrame is one entry on the scope stack: a mapping from SRC identifier
// to its sanitized TGT name, in the current lexical scope.
type scopeFrame map[string]string

// Mapper holds the scope stack (spec.md §3's "Transient state: Scope
// stack"). The zero value is not ready for use; call NewMapper.
type Mapper struct {
	frames []scopeFrame
}

// NewMapper returns a Mapper with a single root scope already pushed, since
// "Exiting the root is a programming error" (spec.md §4.2) implies a root
// frame always exists.
func NewMapper() *Mapper {
	return &Mapper{frames: []scopeFrame{make(scopeFrame)}}
}

// EnterScope pushes a fresh, empty scope — called on function entry.
func (m *Mapper) EnterScope() {
	m.frames = append(m.frames, make(scopeFrame))
}

// ExitScope pops the innermost scope. Exiting the root scope is a
// programming error per spec.md §4.2 and panics rather than silently
// corrupting the stack, since it can only happen from a transformer bug.
func (m *Mapper) ExitScope() {
	if len(m.frames) <= 1 {
		panic("scope: cannot exit the root scope")
	}
	m.frames = m.frames[:len(m.frames)-1]
}

// Declare inserts raw -> sanitize(raw) into the current (innermost) scope
// and returns the sanitized name.
func (m *Mapper) Declare(raw string) string {
	tgt := Sanitize(raw)
	m.frames[len(m.frames)-1][raw] = tgt
	return tgt
}

// DeclareAs inserts raw -> target (an already-sanitized name chosen by the
// caller) into the current scope, bypassing Sanitize. Used for a named
// function expression's own name, which must resolve from inside the
// function's body to the same TGT name its enclosing binding already got
// (spec.md §4.2's sanitize-on-declare rule only applies to the raw-name ->
// fresh-name path; here the name is an alias for a binding that already
// exists).
func (m *Mapper) DeclareAs(raw, target string) string {
	m.frames[len(m.frames)-1][raw] = target
	return target
}

// Lookup searches scopes innermost to outermost and returns the mapped
// name, falling back to the pure sanitization of raw when no enclosing
// scope declared it (spec.md §4.2: "used for free references like
// globals").
func (m *Mapper) Lookup(raw string) string {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if tgt, ok := m.frames[i][raw]; ok {
			return tgt
		}
	}
	return Sanitize(raw)
}

// depth reports the number of scopes currently on the stack; used only by
// tests asserting enter/exit symmetry, so it is unexported rather than part
// of the package's public API.
func (m *Mapper) depth() int { return len(m.frames) }

// isReserved reports whether raw is a closed-set TGT keyword/literal name.
// Unexported: nothing outside this package's own tests needs it directly —
// Sanitize already applies this check wherever a name actually gets
// renamed.
func isReserved(raw string) bool {
	return reservedWords[raw]
}

// hasJSSuffixCollisionRisk reports whether raw already ends with the "_js"
// suffix sanitization would add — used only by tests asserting the
// naming-collision invariant in spec.md §6 ("any identifier ending `_js`
// produced by sanitization of a reserved word" is core-reserved).
func hasJSSuffixCollisionRisk(raw string) bool {
	return strings.HasSuffix(raw, "_js")
}
