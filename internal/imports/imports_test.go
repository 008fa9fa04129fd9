package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerIsEmptyInitially(t *testing.T) {
	m := NewManager()
	assert.True(t, m.IsEmpty())
}

func TestManagerDrainIsDeterministic(t *testing.T) {
	m := NewManager()
	m.AddRuntime("js_strict_eq")
	m.AddRuntime("js_add")
	m.AddStdlib("time")
	m.AddStdlib("math")

	stdlibModules, stdlibAliases, runtimeNames := m.Drain()

	assert.Equal(t, []string{"math", "time"}, stdlibModules)
	assert.Equal(t, []string{"_js_math", "_js_time"}, stdlibAliases)
	assert.Equal(t, []string{"js_add", "js_strict_eq"}, runtimeNames)
	assert.False(t, m.IsEmpty())
}

func TestManagerDrainIsRepeatable(t *testing.T) {
	m := NewManager()
	m.AddRuntime("js_truthy")
	first := mustDrain(m)
	second := mustDrain(m)
	assert.Equal(t, first, second)
}

func mustDrain(m *Manager) []string {
	_, _, runtimeNames := m.Drain()
	return runtimeNames
}

func TestStdlibAlias(t *testing.T) {
	assert.Equal(t, "_js_math", StdlibAlias("math"))
	assert.Equal(t, "_js_random", StdlibAlias("random"))
	assert.Equal(t, "_js_re", StdlibAlias("re"))
	assert.Equal(t, "_js_time", StdlibAlias("time"))
}

func TestAddStdlibPanicsOnUnknownName(t *testing.T) {
	m := NewManager()
	assert.Panics(t, func() { m.AddStdlib("os") })
}
