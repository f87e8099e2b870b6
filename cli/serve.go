// ABOUTME: Web UI subcommand
// ABOUTME: Serves the client table over HTTP until interrupted
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/clientdesk/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the client table in a browser",
		Long:  "Start the web UI. Edits made in the browser live for as long as the server runs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, center, closeStore, err := a.openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			srv, err := web.NewServer(s, center, a.logger)
			if err != nil {
				return err
			}
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from CLIENTDESK_HTTP_ADDR or 127.0.0.1:8080)")

	return cmd
}
