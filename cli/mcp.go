// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for agent integration
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/clientdesk/handlers"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long:  "Start a Model Context Protocol server exposing the session's clients as tools, resources, and prompts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, _, closeStore, err := a.openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			a.logger.Info("starting MCP server", "version", a.version)
			server := handlers.NewServer(s, a.version)

			// Run server on stdio transport
			return server.Run(ctx, &mcp.StdioTransport{})
		},
	}
}
