package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/tui"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	var commitID int

	cmd := &cobra.Command{
		Use:   "checkout [branch]",
		Short: "Move HEAD to a branch tip or a specific commit",
		Long: `Move HEAD to the tip of a branch.

With --commit, HEAD moves to that commit instead and the commit's branch
becomes current. With no argument, an interactive selector lists the
available branches.`,
		Aliases: []string{"co"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				if cmd.Flags().Changed("commit") {
					if len(args) > 0 {
						return fmt.Errorf("cannot combine a branch argument with --commit")
					}
					if err := ctx.Tree.CheckoutCommit(commitID); err != nil {
						return err
					}
					ctx.Splog.Info("HEAD is now at commit %d (branch %d)", commitID, ctx.Tree.CurrentBranch())
					return nil
				}

				branchID, err := resolveBranchArg(ctx, args, "Select a branch to check out:")
				if err != nil {
					return err
				}
				if err := ctx.Tree.Checkout(branchID); err != nil {
					return err
				}
				ctx.Splog.Info("Switched to branch %d (HEAD at commit %d)", branchID, ctx.Tree.Head().ID())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&commitID, "commit", "c", 0, "Commit to move HEAD to instead of a branch tip")

	return cmd
}

// resolveBranchArg parses a branch id argument, or prompts for one when
// no argument was given.
func resolveBranchArg(ctx *runtime.Context, args []string, title string) (int, error) {
	if len(args) > 0 {
		branchID, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid branch id %q", args[0])
		}
		return branchID, nil
	}

	options := make([]tui.SelectOption, 0, ctx.Tree.NumBranches())
	for _, branchID := range ctx.Tree.AllBranchIDs() {
		tip, err := ctx.Tree.LatestOn(branchID)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("branch %d (tip at commit %d)", branchID, tip.ID())
		if branchID == ctx.Tree.CurrentBranch() {
			label += " (current)"
		}
		options = append(options, tui.SelectOption{
			Label: label,
			Value: strconv.Itoa(branchID),
		})
	}

	selected, err := tui.PromptSelect(title, options, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to select branch: %w", err)
	}
	return strconv.Atoi(selected)
}
