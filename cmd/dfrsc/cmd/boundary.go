package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// decompileCmd and lspCmd are documented stubs. Decompilation and the
// language server are external collaborators the compiler core never
// implements (spec.md §1/§6); the subcommands exist so the CLI surface
// matches what §6 lists, rather than silently omitting them.

var decompileCmd = &cobra.Command{
	Use:   "decompile <path>",
	Short: "Decompile codeline JSON back to DFRS source (not part of the compiler core)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("decompilation is not part of the compiler core")
	},
}

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start a DFRS language server (not part of the compiler core)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("the language server is a separate collaborator, not part of this binary")
	},
}

func init() {
	rootCmd.AddCommand(decompileCmd)
	rootCmd.AddCommand(lspCmd)
}
