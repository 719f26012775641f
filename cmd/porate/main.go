// Command porate runs the void-classification pipeline over a single
// structure or a batch of them (SPEC_FULL.md A3).
package main

import (
	"fmt"
	"os"

	"github.com/broomsday/porate/cmd/porate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
