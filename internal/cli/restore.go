package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/tui"
)

// newRestoreCmd creates the restore command
func newRestoreCmd() *cobra.Command {
	var snapshotID string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the graph to a state before a previous command",
		Long: `Restore the graph to the state it had before a previous command ran.

Each modifying command records the state it started from. This command
shows an interactive list of those restore points. With --snapshot, the
named snapshot is restored without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				history, err := ctx.Store.History()
				if err != nil {
					return fmt.Errorf("failed to get restore points: %w", err)
				}
				if len(history) == 0 {
					ctx.Splog.Info("No restore points available.")
					return nil
				}

				selectedID := snapshotID
				if selectedID != "" {
					found := false
					for _, snap := range history {
						if snap.ID == selectedID {
							found = true
							break
						}
					}
					if !found {
						return fmt.Errorf("snapshot %s not found", selectedID)
					}
				} else if len(history) == 1 {
					selectedID = history[0].ID
					ctx.Splog.Info("Restoring to: %s", history[0].DisplayName)
				} else {
					options := make([]tui.SelectOption, len(history))
					for i, snap := range history {
						options[i] = tui.SelectOption{
							Label: snap.DisplayName,
							Value: snap.ID,
						}
					}
					selected, err := tui.PromptSelect("Select state to restore:", options, 0)
					if err != nil {
						return fmt.Errorf("failed to select snapshot: %w", err)
					}
					selectedID = selected
				}

				restored, err := ctx.Store.Restore(selectedID)
				if err != nil {
					return err
				}
				ctx.Tree = restored
				ctx.Splog.Info("Restored; HEAD is at commit %d on branch %d",
					restored.Head().ID(), restored.CurrentBranch())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "Specific snapshot ID to restore (skips interactive selection)")

	return cmd
}
