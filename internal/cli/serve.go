package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/internal/server"
	"github.com/matzehuels/archlens/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		ef   engineFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimization engine over HTTP",
		Long: `Start an HTTP server around one engine. Clients post diagrams and
viewports, trigger icon loading, and receive loaded icons on the
/v1/events websocket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := c.newEngine(ctx, ef)
			if err != nil {
				return err
			}
			defer engine.Close()

			srv := server.New(engine, server.Options{Addr: addr, IconsDir: ef.iconsDir}, component(loggerFromContext(ctx), componentServer))
			printInfo("Serving on %s", addr)
			if ef.iconsDir != "" {
				printDetail("Icons: %s", ef.iconsDir)
			}
			if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	ef.register(cmd, cache.BackendMemory)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
