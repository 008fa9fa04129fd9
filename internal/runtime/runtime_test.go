package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSourceImplementsRuntimeContract checks that every helper name the
// transformer (internal/transform) is known to import from the runtime
// companion actually has a definition in the embedded source, so a typo in
// either package would show up here instead of only at TGT-interpretation
// time (which this project's tests never run).
func TestSourceImplementsRuntimeContract(t *testing.T) {
	required := []string{
		"class _JSUndefinedType",
		"def js_truthy(",
		"def js_strict_eq(",
		"def js_strict_neq(",
		"def js_to_number(",
		"def js_add(",
		"def js_sub(",
		"def js_mul(",
		"def js_div(",
		"def js_mod(",
		"def js_to_string(",
		"def js_typeof(",
		"def js_for_in_keys(",
		"def js_char_code_at(",
		"def js_substring(",
		"def js_array_pop(",
		"def js_date_now(",
		"def console_log(",
	}
	for _, want := range required {
		assert.Contains(t, Source, want, "runtime source missing %q", want)
	}
}

func TestDefaultModuleName(t *testing.T) {
	assert.Equal(t, "js_compat", DefaultModuleName)
}

func TestSourceNeverGeneratedPerFile(t *testing.T) {
	assert.Contains(t, Source, "Shipped as-is")
}
