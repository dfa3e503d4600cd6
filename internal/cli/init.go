package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/output"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/store"
	"vcsim.dev/vcsim/internal/tree"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Start a new session",
		Long: `Start a new session with a single root commit.

If a session already exists it is left alone; use 'vcsim reset' to discard
an existing session.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			splog := output.NewSplog()
			defer splog.Close()

			dir, err := config.GetStatePath()
			if err != nil {
				return err
			}
			s := store.NewStore(dir)
			if s.Exists() {
				ctx, err := runtime.GetContext()
				if err != nil {
					return err
				}
				defer ctx.Close()
				splog.Info("Session already exists: %d commits on %d branches. Use 'vcsim reset' to start over.",
					ctx.Tree.NumCommits(), ctx.Tree.NumBranches())
				return nil
			}

			if err := s.Save(tree.New()); err != nil {
				return err
			}
			splog.Info("Initialized a new session in %s", dir)
			return nil
		},
	}

	return cmd
}
