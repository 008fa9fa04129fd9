// Command es5py is the CLI driver named in spec.md §1/§6 as an external
// collaborator of the core ("The command-line driver, file I/O, verbose
// dumps, optional post-execution of the emitted program" — out of scope for
// the transformer itself, specified here only by the interface it consumes:
// internal/srcparser for the parser contract, internal/tagger +
// internal/transform for the core, internal/pyprinter for the unparser
// contract, and internal/runtime for the companion module text).
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
