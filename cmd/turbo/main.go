// Package main implements the turbo CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"turbo/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "turbo",
		Short:         "Turbo compiler driver",
		Long:          `Turbo compiles source units to WebAssembly or asm.js`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyColorMode(cmd)
		},
	}

	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	return rootCmd
}

// main builds the command tree and executes it.
// If command execution returns an error, it is printed and the process exits with status code 1.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
