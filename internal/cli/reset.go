package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/tui"
)

// newResetCmd creates the reset command
func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the whole graph and start over",
		Long: `Discard the whole graph and start over with a single root commit.

Commit and branch numbering restart from zero. The state before the reset
is kept in history and can be brought back with 'vcsim restore'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				if !yes {
					confirmed, err := tui.PromptConfirm("Discard all commits and branches?", false)
					if err != nil {
						return err
					}
					if !confirmed {
						ctx.Splog.Info("Reset canceled.")
						return nil
					}
				}

				ctx.Tree.Reset()
				ctx.Splog.Info("Graph reset to a single root commit.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
