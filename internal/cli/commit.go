package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/runtime"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var parent int

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Add a commit on top of HEAD or a chosen parent",
		Long: `Add a commit on top of HEAD.

With --parent, the commit is added on top of that commit instead and joins
its branch. The parent must be the tip of its line of history; committing
onto a commit that already has a child is rejected. HEAD stays put unless
the parent was HEAD or the autoCheckout configuration is enabled.`,
		Aliases: []string{"c"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				if cmd.Flags().Changed("parent") {
					c, err := ctx.Tree.AddCommitTo(parent)
					if err != nil {
						return err
					}
					autoCheckout, err := config.GetAutoCheckout()
					if err != nil {
						return err
					}
					if autoCheckout && !ctx.Tree.IsHead(c.ID()) {
						if err := ctx.Tree.CheckoutCommit(c.ID()); err != nil {
							return err
						}
					}
					ctx.Splog.Info("Added %s", c.Describe())
					return nil
				}

				c, err := ctx.Tree.AddCommit()
				if err != nil {
					return err
				}
				ctx.Splog.Info("Added %s", c.Describe())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&parent, "parent", "p", 0, "Commit to use as the parent instead of HEAD")

	return cmd
}
