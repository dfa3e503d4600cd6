package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/cli/helpers"
	"vcsim.dev/vcsim/internal/runtime"
	"vcsim.dev/vcsim/internal/server"
)

// newServeCmd creates the serve command
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP for frontends",
		Long: `Serve the graph over HTTP.

GET /api/graph returns the serialized graph. POST /api/command accepts
commands like {"command": "commit --parent 2"} and returns the result
together with the updated graph. Mutations are persisted to the session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				srv := server.NewServer(ctx)
				ctx.Splog.Info("Serving on %s", addr)
				return http.ListenAndServe(addr, srv)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Address to listen on")

	return cmd
}
