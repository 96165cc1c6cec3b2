// Package cmd implements dfrsc's command tree, grounded on
// CWBudde-go-dws's cmd/dwscript/cmd package: a spf13/cobra root command,
// a package-level Execute() entry point, a persistent --verbose flag,
// and a version subcommand with build-time-injected variables.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version, GitCommit and BuildDate are overridden at build time via
// -ldflags "-X github.com/dfrs-lang/dfrsc/cmd/dfrsc/cmd.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dfrsc",
	Short: "DFRS compiler",
	Long: `dfrsc compiles DFRS source files into the codeline JSON blocks
the target sandbox platform's visual-scripting runtime imports.

DFRS lowers events and functions written in a small event/action DSL
into that platform's block-based wire format, validating every name,
argument, and tag against an external action-dump catalog before
emitting anything.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
