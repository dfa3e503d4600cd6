package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/gitexport"
	"vcsim.dev/vcsim/internal/runtime"
)

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph as a real git repository",
		Long: `Export the graph as a real git repository.

Each commit becomes a git commit with the same parent structure, branches
become refs named branch-N, and HEAD points at the current branch. With
--path, the repository is written to that directory; without it, the export
runs in memory as a dry run to verify the graph converts cleanly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if path == "" {
					if _, err := gitexport.ExportToMemory(ctx.Tree); err != nil {
						return fmt.Errorf("export failed: %w", err)
					}
					ctx.Splog.Info("Export verified in memory; pass --path to write to disk.")
					return nil
				}

				if _, err := gitexport.ExportToPath(ctx.Tree, path); err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				ctx.Splog.Info("Exported %d commits to %s", ctx.Tree.NumCommits(), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Directory to write the repository to")

	return cmd
}
