// ABOUTME: MCP server assembly
// ABOUTME: Registers every client tool, resource, and prompt on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/session"
)

// NewServer builds an MCP server over the session.
func NewServer(s *session.Session, version string) *mcp.Server {
	clientHandlers := NewClientHandlers(s)
	queryHandlers := NewQueryHandlers(s)
	vizHandlers := NewVizHandlers(s)
	resourceHandlers := NewResourceHandlers(s)
	promptHandlers := NewPromptHandlers(s)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clientdesk",
		Version: version,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a new client. Company, product, status, channel, and account executive are required",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_client",
		Description: "Update fields of an existing client by ID",
	}, clientHandlers.UpdateClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client by ID",
	}, clientHandlers.DeleteClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client",
		Description: "Get one client by ID",
	}, clientHandlers.GetClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_clients",
		Description: "List clients with exact-match filters on product, status, and account executive, free-text search, and sorting",
	}, queryHandlers.QueryClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "client_filter_options",
		Description: "List the distinct products, statuses, and account executives available as filters",
	}, queryHandlers.ClientFilterOptions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "client_stats",
		Description: "Summarize clients by status, product, and channel with deal totals and active contracts",
	}, vizHandlers.ClientStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_exec_graph",
		Description: "Render account executives and their clients as GraphViz DOT",
	}, vizHandlers.GenerateExecGraph)

	// Register resources
	server.AddResource(&mcp.Resource{
		URI:         "clients://all",
		Name:        "clients",
		Description: "Every client in the session, in ID order",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "clients://options",
		Name:        "filter-options",
		Description: "Distinct values for each filterable field",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "clients://{id}",
		Name:        "client",
		Description: "One client by ID",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Register prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "client-summary",
		Description: "Summarize one client relationship",
		Arguments: []*mcp.PromptArgument{
			{Name: "client_id", Description: "Client ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "exec-review",
		Description: "Review an account executive's book of business",
		Arguments: []*mcp.PromptArgument{
			{Name: "account_exec", Description: "Account executive name", Required: true},
		},
	}, promptHandlers.GetPrompt)

	return server
}
