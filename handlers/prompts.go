// ABOUTME: MCP prompt handlers for reusable account review templates
// ABOUTME: Provides client-summary and exec-review prompts built from live data
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/session"
	"github.com/harperreed/clientdesk/view"
)

type PromptHandlers struct {
	session *session.Session
}

func NewPromptHandlers(s *session.Session) *PromptHandlers {
	return &PromptHandlers{session: s}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "client-summary":
		return h.getClientSummaryPrompt(ctx, arguments)
	case "exec-review":
		return h.getExecReviewPrompt(ctx, arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func (h *PromptHandlers) getClientSummaryPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["client_id"]
	if !ok {
		return nil, fmt.Errorf("client_id is required")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}

	client, err := h.session.Clients.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Please summarize this client relationship and suggest next steps:\n\n")
	writeClient(&promptText, *client)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary for client: %s", client.Company),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getExecReviewPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	exec := strings.TrimSpace(args["account_exec"])
	if exec == "" {
		return nil, fmt.Errorf("account_exec is required")
	}

	records, err := h.session.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	filters := models.NewFilterState()
	filters.Set(models.FieldAccountExec, exec)
	book := view.Derive(records, filters, models.SortState{Key: models.FieldEndDate}, "")

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Review the book of business for %s. ", exec))
	promptText.WriteString("Flag contracts ending soon and clients that are not active.\n\n")
	if len(book) == 0 {
		promptText.WriteString("No clients are assigned.\n")
	}
	for _, c := range book {
		writeClient(&promptText, c)
		promptText.WriteString("\n")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Book review for %s", exec),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func writeClient(b *strings.Builder, c models.Client) {
	for _, f := range models.Fields() {
		if f == models.FieldID || !c.Has(f) {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", f.Label(), c.Value(f)))
	}
}
