package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/r-werner/es5topy/internal/diagnostics"
	"github.com/r-werner/es5topy/internal/pyprinter"
	"github.com/r-werner/es5topy/internal/runtime"
	"github.com/r-werner/es5topy/internal/srcparser"
	"github.com/r-werner/es5topy/internal/tagger"
	"github.com/r-werner/es5topy/internal/transform"
)

var transpileFlags = struct {
	out           string
	runtimeModule string
	color         string
	run           string
}{}

var transpileCmd = &cobra.Command{
	Use:   "transpile <file>",
	Short: "Transpile one SRC file into one TGT file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranspile,
}

func init() {
	transpileCmd.Flags().StringVarP(&transpileFlags.out, "out", "o", "", "output file path (default: stdout)")
	transpileCmd.Flags().StringVar(&transpileFlags.runtimeModule, "runtime-module", runtime.DefaultModuleName, "module path the emitted file imports the runtime companion from")
	transpileCmd.Flags().StringVar(&transpileFlags.color, "color", "auto", "colorize diagnostics: auto | true | false")
	transpileCmd.Flags().StringVar(&transpileFlags.run, "run", "", "optional: shell out to this interpreter binary on the emitted file after writing it (driver-only convenience, never referenced by internal/*)")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	applyLogLevel()

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", file, err)
	}
	log.Debugf("read %d bytes from %s", len(src), file)

	prog, err := srcparser.Parse(file, string(src))
	if err != nil {
		return err
	}

	sourceLines := splitLines(string(src))

	t := tagger.New(file, sourceLines)
	if err := t.Tag(prog); err != nil {
		return printDiagnostic(err)
	}

	xf := transform.New(file, string(src))
	mod, err := xf.TransformProgram(prog, transpileFlags.runtimeModule)
	if err != nil {
		return printDiagnostic(err)
	}
	log.Infof("parsed and transformed %d top-level statements", len(prog.Body))

	out := pyprinter.Print(mod)

	var w *os.File
	if transpileFlags.out == "" {
		w = os.Stdout
	} else {
		f, err := os.Create(transpileFlags.out)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", transpileFlags.out, err)
		}
		defer f.Close()
		w = f
	}
	n, err := w.WriteString(out)
	if err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}
	if transpileFlags.out != "" {
		log.Infof("wrote %d bytes to %s", n, transpileFlags.out)
	}

	if transpileFlags.run != "" {
		if transpileFlags.out == "" {
			return fmt.Errorf("--run requires --out (nothing to execute from stdout)")
		}
		return runEmitted(transpileFlags.run, transpileFlags.out)
	}
	return nil
}

// runEmitted implements the "optional post-execution of the emitted
// program" spec.md §1 names as an out-of-core-scope driver concern
// (SPEC_FULL.md §5's --run flag stub).
func runEmitted(interpreter, path string) error {
	c := exec.Command(interpreter, path)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	return c.Run()
}

func printDiagnostic(err error) error {
	if d, ok := err.(*diagnostics.Diagnostic); ok {
		withColor := shouldColor()
		fmt.Fprint(os.Stderr, d.Format(withColor))
		return d
	}
	return err
}

func shouldColor() bool {
	switch transpileFlags.color {
	case "true":
		return true
	case "false":
		return false
	default:
		return diagnostics.GetTerminalInfo(os.Stderr).UseColorEscapes
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
