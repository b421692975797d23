// Command xlcalc evaluates, converts and inspects sheets stored as JSON,
// YAML, CSV or xlsx files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
