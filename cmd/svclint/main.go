// Command svclint checks service identifiers against the naming convention
// derived from their bound types.
package main

import (
	"os"

	"github.com/leapstack-labs/svclint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
