package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/tui"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var commits string

	cmd := &cobra.Command{
		Use:   "merge [branch]",
		Short: "Merge another branch into the current branch",
		Long: `Merge the tip of another branch into the current branch.

The merge commit lands on the current branch with HEAD and the other
branch's tip as parents. With --commits, two specific commits are merged
instead, the first one providing the branch the merge commit lands on.
With no argument, an interactive selector lists the candidate branches.`,
		Aliases: []string{"m"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunMutating(cmd, args, func(ctx *runtime.Context) error {
				if commits != "" {
					if len(args) > 0 {
						return fmt.Errorf("cannot combine a branch argument with --commits")
					}
					parentID, otherID, err := parseCommitPair(commits)
					if err != nil {
						return err
					}
					c, err := ctx.Tree.MergeCommits(parentID, otherID)
					if err != nil {
						return err
					}
					ctx.Splog.Info("Merged commits %d and %d into %s", parentID, otherID, c.Describe())
					return nil
				}

				branchID, err := resolveMergeTarget(ctx, args)
				if err != nil {
					return err
				}
				c, err := ctx.Tree.Merge(branchID)
				if err != nil {
					return err
				}
				ctx.Splog.Info("Merged branch %d into %s", branchID, c.Describe())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&commits, "commits", "", "Merge two specific commits, given as 'a,b'")

	return cmd
}

func parseCommitPair(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two commit ids as 'a,b', got %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid commit id %q", parts[0])
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid commit id %q", parts[1])
	}
	return a, b, nil
}

// resolveMergeTarget parses a branch argument, or prompts with the
// branches other than the current one.
func resolveMergeTarget(ctx *runtime.Context, args []string) (int, error) {
	if len(args) > 0 {
		branchID, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("invalid branch id %q", args[0])
		}
		return branchID, nil
	}

	var options []tui.SelectOption
	for _, branchID := range ctx.Tree.AllBranchIDs() {
		if branchID == ctx.Tree.CurrentBranch() {
			continue
		}
		tip, err := ctx.Tree.LatestOn(branchID)
		if err != nil {
			continue
		}
		options = append(options, tui.SelectOption{
			Label: fmt.Sprintf("branch %d (tip at commit %d)", branchID, tip.ID()),
			Value: strconv.Itoa(branchID),
		})
	}
	if len(options) == 0 {
		return 0, fmt.Errorf("no other branches to merge")
	}

	selected, err := tui.PromptSelect("Select a branch to merge:", options, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to select branch: %w", err)
	}
	return strconv.Atoi(selected)
}
