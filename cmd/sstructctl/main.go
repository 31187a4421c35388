// SPDX-License-Identifier: MIT

// Command sstructctl loads semi-structured grid descriptions, assembles
// them and exports their data.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
