// Package imports is component C4, the import manager described in
// spec.md §4.3. It is deliberately small — two accumulating sets plus a
// deterministic drain — but the determinism requirement ("Emission is a
// pure function of the accumulated sets") is exercised the same way the
// teacher keeps its own output orderings deterministic throughout
// internal/logger (SortableMsgs) and internal/js_printer: accumulate into a
// set, then sort.Strings before emitting, never rely on map iteration
// order reaching the output.
package imports

import "sort"

// stdlibAlias is the closed set of TGT stdlib modules the transformer may
// reference, each with a fixed alias (spec.md §4.3).
type stdlibAlias struct {
	module string
	alias  string
}

var stdlibTable = map[string]stdlibAlias{
	"math":   {"math", "_js_math"},
	"random": {"random", "_js_random"},
	"re":     {"re", "_js_re"},
	"time":   {"time", "_js_time"},
}

// Manager accumulates the stdlib aliases and runtime-helper names demanded
// by the transformer's rewrites.
type Manager struct {
	stdlib  map[string]bool
	runtime map[string]bool
}

func NewManager() *Manager {
	return &Manager{
		stdlib:  make(map[string]bool),
		runtime: make(map[string]bool),
	}
}

// AddStdlib records use of one of the four fixed stdlib aliases. name must
// be one of "math", "random", "re", "time" — anything else is a
// transformer bug, not a user-facing error, so it panics rather than
// silently doing nothing.
func (m *Manager) AddStdlib(name string) {
	if _, ok := stdlibTable[name]; !ok {
		panic("imports: unknown stdlib alias requested: " + name)
	}
	m.stdlib[name] = true
}

// AddRuntime records use of a runtime-companion helper name (an arbitrary
// string drawn from C1's surface, e.g. "js_strict_eq").
func (m *Manager) AddRuntime(name string) {
	m.runtime[name] = true
}

// StdlibAlias returns the fixed alias for a stdlib module, for use by
// callers building Attribute/Call nodes (e.g. "_js_math" for "math").
func StdlibAlias(name string) string {
	return stdlibTable[name].alias
}

// Drain returns the stdlib import statements (alphabetical by module name)
// followed by the sorted runtime helper names in use, per spec.md §4.3: "On
// emission: stdlib imports first (alphabetical), then a single
// `from <runtime> import a, b, c` with names sorted." The runtime module
// path itself is an integration-specific detail (spec.md §9's open question
// on naming) that the caller supplies when it turns runtimeNames into an
// ImportFrom statement — Drain only reports which names are in use.
func (m *Manager) Drain() (stdlibModules []string, stdlibAliases []string, runtimeNames []string) {
	names := make([]string, 0, len(m.stdlib))
	for name := range m.stdlib {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry := stdlibTable[name]
		stdlibModules = append(stdlibModules, entry.module)
		stdlibAliases = append(stdlibAliases, entry.alias)
	}

	runtimeNames = make([]string, 0, len(m.runtime))
	for name := range m.runtime {
		runtimeNames = append(runtimeNames, name)
	}
	sort.Strings(runtimeNames)

	return
}

// IsEmpty reports whether nothing has been accumulated yet, matching
// spec.md §8's "with no usage, no imports are emitted" invariant.
func (m *Manager) IsEmpty() bool {
	return len(m.stdlib) == 0 && len(m.runtime) == 0
}
