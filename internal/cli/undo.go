package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
)

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recently added commit",
		Long: `Remove the most recently added commit from the graph.

Branch tips that pointed at the removed commit roll back to its parent,
and HEAD follows if it was on the removed commit. Undoing with only the
root commit left does nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				if !ctx.Tree.Undo() {
					ctx.Splog.Info("Nothing to undo.")
					return nil
				}
				ctx.Splog.Info("Removed the last commit; HEAD is now at commit %d", ctx.Tree.Head().ID())
				return nil
			})
		},
	}

	return cmd
}
