// Command dfrsc compiles DFRS source files into the codeline JSON the
// target sandbox platform imports.
package main

import (
	"fmt"
	"os"

	"github.com/dfrs-lang/dfrsc/cmd/dfrsc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
