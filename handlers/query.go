// ABOUTME: Client list query tool handlers
// ABOUTME: Implements query_clients and client_filter_options over the derived view
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/session"
	"github.com/harperreed/clientdesk/view"
)

type QueryHandlers struct {
	session *session.Session
}

func NewQueryHandlers(s *session.Session) *QueryHandlers {
	return &QueryHandlers{session: s}
}

type QueryClientsInput struct {
	Product     string `json:"product,omitempty" jsonschema:"Only clients with this product (omit or 'all' for any)"`
	Status      string `json:"status,omitempty" jsonschema:"Only clients with this status (omit or 'all' for any)"`
	AccountExec string `json:"account_exec,omitempty" jsonschema:"Only clients owned by this account executive (omit or 'all' for any)"`
	Search      string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against every field"`
	SortBy      string `json:"sort_by,omitempty" jsonschema:"Field to sort by, e.g. company, dealAmount, endDate"`
	Descending  bool   `json:"descending,omitempty" jsonschema:"Sort descending instead of ascending"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 50)"`
}

type QueryClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
	Matched int            `json:"matched"`
	Count   int            `json:"count"`
}

func (h *QueryHandlers) QueryClients(ctx context.Context, req *mcp.CallToolRequest, input QueryClientsInput) (*mcp.CallToolResult, QueryClientsOutput, error) {
	// Set default limit
	if input.Limit <= 0 {
		input.Limit = 50
	}

	q := view.NewQuery()
	q.Filters.Set(models.FieldProduct, input.Product)
	q.Filters.Set(models.FieldStatus, input.Status)
	q.Filters.Set(models.FieldAccountExec, input.AccountExec)
	q.Search = input.Search

	if input.SortBy != "" {
		field, err := models.ParseField(input.SortBy)
		if err != nil {
			return nil, QueryClientsOutput{}, fmt.Errorf("invalid sort_by: %w", err)
		}
		q.Sort = models.SortState{Key: field, Direction: models.Ascending}
		if input.Descending {
			q.Sort.Direction = models.Descending
		}
	}

	records, err := h.session.View(ctx, q)
	if err != nil {
		return nil, QueryClientsOutput{}, fmt.Errorf("failed to query clients: %w", err)
	}

	out := QueryClientsOutput{Matched: len(records)}
	if len(records) > input.Limit {
		records = records[:input.Limit]
	}

	out.Clients = make([]ClientOutput, len(records))
	for i := range records {
		out.Clients[i] = clientToOutput(&records[i])
	}
	out.Count = len(out.Clients)

	return nil, out, nil
}

type FilterOptionsInput struct{}

type FilterOptionsOutput struct {
	Products     []string `json:"products"`
	Statuses     []string `json:"statuses"`
	AccountExecs []string `json:"account_execs"`
}

func (h *QueryHandlers) ClientFilterOptions(ctx context.Context, req *mcp.CallToolRequest, input FilterOptionsInput) (*mcp.CallToolResult, FilterOptionsOutput, error) {
	opts, err := h.session.Options(ctx)
	if err != nil {
		return nil, FilterOptionsOutput{}, fmt.Errorf("failed to list filter options: %w", err)
	}

	return nil, FilterOptionsOutput{
		Products:     nonNil(opts[models.FieldProduct]),
		Statuses:     nonNil(opts[models.FieldStatus]),
		AccountExecs: nonNil(opts[models.FieldAccountExec]),
	}, nil
}

// nonNil keeps empty lists as [] in the JSON output.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
