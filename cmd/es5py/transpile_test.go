package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSrc(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.js")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// runCLI resets the package-level flag struct before each invocation so
// a flag left unset on this call can't see a value a previous test set,
// since pflag.StringVar doesn't reset to its default between Execute calls.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	transpileFlags.out = ""
	transpileFlags.runtimeModule = "js_compat"
	transpileFlags.color = "auto"
	transpileFlags.run = ""
	rootCmd.SetArgs(args)
	return Execute()
}

func TestTranspileWritesFileOutput(t *testing.T) {
	in := writeTempSrc(t, "var x = 1 + 2;\n")
	out := filepath.Join(t.TempDir(), "out.py")

	err := runCLI(t, "transpile", in, "--out", out, "--log-level", "silent")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "x = js_add(1, 2)")
}

func TestTranspileMissingFileReturnsError(t *testing.T) {
	err := runCLI(t, "transpile", filepath.Join(t.TempDir(), "missing.js"), "--log-level", "silent")
	assert.Error(t, err)
}

func TestTranspileSyntaxErrorReturnsError(t *testing.T) {
	in := writeTempSrc(t, "var x = ;\n")
	err := runCLI(t, "transpile", in, "--out", filepath.Join(t.TempDir(), "out.py"), "--log-level", "silent")
	assert.Error(t, err)
}

func TestTranspileRejectsBreakOutsideLoop(t *testing.T) {
	in := writeTempSrc(t, "break;\n")
	err := runCLI(t, "transpile", in, "--out", filepath.Join(t.TempDir(), "out.py"), "--log-level", "silent")
	assert.Error(t, err)
}

func TestTranspileRunRequiresOut(t *testing.T) {
	in := writeTempSrc(t, "var x = 1;\n")
	err := runCLI(t, "transpile", in, "--run", "python3", "--log-level", "silent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--run requires --out")
}

func TestTranspileCustomRuntimeModule(t *testing.T) {
	in := writeTempSrc(t, "var x = a || b;\n")
	out := filepath.Join(t.TempDir(), "out.py")
	err := runCLI(t, "transpile", in, "--out", out, "--runtime-module", "myrt", "--log-level", "silent")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "from myrt import")
}

func TestSplitLinesKeepsTrailingSegment(t *testing.T) {
	lines := splitLines("a\nbb\nccc")
	assert.Equal(t, []string{"a\n", "bb\n", "ccc"}, lines)
}

func TestSplitLinesHandlesTrailingNewline(t *testing.T) {
	lines := splitLines("a\nb\n")
	assert.Equal(t, []string{"a\n", "b\n", ""}, lines)
}

func TestApplyLogLevelSilentDoesNotPanic(t *testing.T) {
	logLevel = "silent"
	defer func() { logLevel = "info" }()
	applyLogLevel()
}

func TestApplyLogLevelUnknownFallsBackToInfo(t *testing.T) {
	logLevel = "not-a-level"
	defer func() { logLevel = "info" }()
	applyLogLevel()
	assert.Equal(t, "info", log.GetLevel().String())
}
