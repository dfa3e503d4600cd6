// Package cli wires the vcsim commands together with cobra.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vcsim",
		Short:   "Vcsim is a sandbox for practicing version control history operations",
		Long: `Vcsim is a sandbox for practicing version control history operations.

It keeps an in-memory graph of commits and branches that you can grow,
fork, merge, rewind, and inspect without touching a real repository.
Sessions persist between invocations; use 'vcsim reset' to start over.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newCheckoutCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}
