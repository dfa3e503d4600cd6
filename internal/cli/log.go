package cli

import (
	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/output"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/tui"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var (
		reverse     bool
		full        bool
		branches    bool
		interactive bool
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Show the commit graph, newest commit first",
		Aliases: []string{"l"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				opts, err := logOptions(cmd, reverse, full, noColor)
				if err != nil {
					return err
				}
				opts.ShowBranches = branches

				renderer := output.NewGraphRenderer(runtime.GraphViewOf(ctx.Tree))

				if interactive {
					return tui.RunInteractiveLog(ctx.Splog, renderer, opts)
				}

				for _, line := range renderer.RenderGraph(opts) {
					ctx.Splog.Page(line + "\n")
				}
				if branches {
					ctx.Splog.Newline()
					for _, line := range renderer.RenderBranches(opts) {
						ctx.Splog.Page(line + "\n")
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Print the log upside down, oldest commit first")
	cmd.Flags().BoolVarP(&full, "full", "f", false, "Include children and connecting lines")
	cmd.Flags().BoolVarP(&branches, "branches", "b", false, "Append the branch list after the graph")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the graph interactively")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// logOptions resolves render options from config defaults and flag overrides.
func logOptions(cmd *cobra.Command, reverse, full, noColor bool) (output.GraphRenderOptions, error) {
	var opts output.GraphRenderOptions

	style, err := config.GetLogStyle()
	if err != nil {
		return opts, err
	}
	opts.Full = style == "full"
	if cmd.Flags().Changed("full") {
		opts.Full = full
	}

	configReverse, err := config.GetReverse()
	if err != nil {
		return opts, err
	}
	opts.Reverse = configReverse
	if cmd.Flags().Changed("reverse") {
		opts.Reverse = reverse
	}

	mode, err := config.GetColorMode()
	if err != nil {
		return opts, err
	}
	switch {
	case noColor || mode == "never":
		opts.NoColor = true
	case mode == "always":
		opts.NoColor = false
	default:
		opts.NoColor = !output.ColorsSupported()
	}

	return opts, nil
}
