package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// log is the operational logger (SPEC_FULL.md §2): distinct from
// internal/diagnostics' coded-diagnostic format, which is spec.md §6 wire
// contract and must never be routed through logrus.
var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:           "es5py",
	Short:         "Translate a restricted ES5-style subset into Python-3.8-class source",
	Long:          `es5py translates a single SRC file (an ES5-style dynamically-typed scripting language) into a single TGT file (a Python-3.8-class language) plus an import of a small runtime companion module, or fails fast with a coded diagnostic pointing at the offending source location.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "operational log verbosity: debug | info | warning | error | silent")
	rootCmd.AddCommand(transpileCmd)
}

func applyLogLevel() {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		if logLevel == "silent" {
			log.SetOutput(os.Stdout)
			log.SetLevel(logrus.PanicLevel)
			return
		}
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// Execute runs the root command, printing any returned error to stderr
// (the driver's job per spec.md §1 — "file I/O, verbose dumps" and error
// reporting at this layer are explicitly out of the core's scope).
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
