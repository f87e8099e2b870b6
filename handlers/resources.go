// ABOUTME: MCP resource handlers for exposing client data
// ABOUTME: Provides read-only access to the client list, single clients, and filter options via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/session"
)

const resourceScheme = "clients://"

type ResourceHandlers struct {
	session *session.Session
}

func NewResourceHandlers(s *session.Session) *ResourceHandlers {
	return &ResourceHandlers{session: s}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	switch path := strings.TrimPrefix(uri, resourceScheme); path {
	case "all":
		return h.readAllClients(ctx, uri)
	case "options":
		return h.readOptions(ctx, uri)
	default:
		id, err := strconv.ParseInt(path, 10, 64)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return h.readClient(ctx, uri, id)
	}
}

func (h *ResourceHandlers) readAllClients(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	records, err := h.session.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return jsonResource(uri, records)
}

func (h *ResourceHandlers) readClient(ctx context.Context, uri string, id int64) (*mcp.ReadResourceResult, error) {
	client, err := h.session.Clients.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	return jsonResource(uri, client)
}

func (h *ResourceHandlers) readOptions(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	opts, err := h.session.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list filter options: %w", err)
	}
	return jsonResource(uri, opts)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
