// SPDX-License-Identifier: EPL-2.0

// Command eqplay draws the waveform of a mono 16-bit WAV file and plays it,
// optionally through a positional gain table.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "eqplay: %v\n", err)
		os.Exit(1)
	}
}
