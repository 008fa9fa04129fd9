package transform

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/r-werner/es5topy/internal/pyprinter"
	"github.com/r-werner/es5topy/internal/srcparser"
	"github.com/r-werner/es5topy/internal/tagger"
)

type scenarioFile struct {
	Scenarios []struct {
		Name     string   `yaml:"name"`
		Src      string   `yaml:"src"`
		Contains []string `yaml:"contains"`
	} `yaml:"scenarios"`
}

// TestGoldenScenarios replays every end-to-end scenario listed in
// testdata/scenarios.yaml, the same golden-fixture pattern grafana-k6 uses
// yaml.v3 for across its own test suites.
func TestGoldenScenarios(t *testing.T) {
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)

	var file scenarioFile
	require.NoError(t, yaml.Unmarshal(raw, &file))
	require.NotEmpty(t, file.Scenarios)

	for _, sc := range file.Scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			prog, err := srcparser.Parse("t.js", sc.Src)
			require.NoError(t, err)

			tg := tagger.New("t.js", []string{sc.Src})
			require.NoError(t, tg.Tag(prog))

			xf := New("t.js", sc.Src)
			mod, err := xf.TransformProgram(prog, "js_compat")
			require.NoError(t, err)

			out := pyprinter.Print(mod)
			for _, want := range sc.Contains {
				assert.Contains(t, out, want, "scenario %q missing expected substring", sc.Name)
			}
		})
	}
}
