package helpers

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(_ *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext()
	if err != nil {
		return err
	}
	defer ctx.Close()
	return fn(ctx)
}

// RunMutating wraps Run, capturing the pre-command state and, once fn
// succeeds, recording it to history and persisting the mutated tree. A
// failed fn records nothing, so history holds only real restore points.
func RunMutating(cmd *cobra.Command, args []string, fn func(ctx *runtime.Context) error) error {
	return Run(cmd, func(ctx *runtime.Context) error {
		before := ctx.Tree.Snapshot()
		if err := fn(ctx); err != nil {
			return err
		}
		if err := ctx.RecordHistory(before, cmd.Name(), args); err != nil {
			return err
		}
		return ctx.Save()
	})
}
