// Package main provides the CLI entrypoint for cap-structure-generator.
//
// cap-structure-generator builds the parameter-framework common types
// structure file of the configurable audio policy:
//   - Reads stream types and device masks from the audio base C header
//   - Applies the value policy (renames, deprecations, stubs, bit remapping)
//   - Appends BitParameter / ValuePair elements to the structure template
//   - Writes the pretty-printed result
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
