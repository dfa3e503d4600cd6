package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var (
		at       int
		checkout bool
	)

	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Create a new branch rooted at HEAD or a chosen commit",
		Long: `Create a new branch whose tip starts at HEAD.

The new branch is not checked out unless --checkout is given. With --at,
the branch is rooted at that commit instead of HEAD.`,
		Aliases: []string{"b"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				var branchID int
				if cmd.Flags().Changed("at") {
					id, err := ctx.Tree.BranchAt(at)
					if err != nil {
						return err
					}
					branchID = id
				} else {
					branchID = ctx.Tree.Branch()
				}

				tip, err := ctx.Tree.LatestOn(branchID)
				if err != nil {
					return err
				}
				ctx.Splog.Info("Created branch %d at commit %d", branchID, tip.ID())

				if checkout {
					if err := ctx.Tree.Checkout(branchID); err != nil {
						return err
					}
					ctx.Splog.Info("Switched to branch %d", branchID)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "Commit to root the branch at instead of HEAD")
	cmd.Flags().BoolVarP(&checkout, "checkout", "c", false, "Switch to the new branch after creating it")

	return cmd
}
