// ABOUTME: Stats and GraphViz visualization MCP handlers
// ABOUTME: Provides client_stats and generate_exec_graph tools for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/session"
	"github.com/harperreed/clientdesk/view"
	"github.com/harperreed/clientdesk/viz"
)

type VizHandlers struct {
	session *session.Session
}

func NewVizHandlers(s *session.Session) *VizHandlers {
	return &VizHandlers{session: s}
}

type ClientStatsInput struct {
	AsOf string `json:"as_of,omitempty" jsonschema:"Day used to count active contracts (YYYY-MM-DD, default today)"`
}

type ClientStatsOutput struct {
	TotalClients       int            `json:"total_clients"`
	ActiveContracts    int            `json:"active_contracts"`
	ByStatus           map[string]int `json:"by_status"`
	ByProduct          map[string]int `json:"by_product"`
	ByChannel          map[string]int `json:"by_channel"`
	TotalDealAmount    string         `json:"total_deal_amount"`
	TotalMonthlyVolume string         `json:"total_monthly_volume"`
	AsOf               string         `json:"as_of"`
	Dashboard          string         `json:"dashboard"`
}

func (h *VizHandlers) ClientStats(ctx context.Context, request *mcp.CallToolRequest, input ClientStatsInput) (*mcp.CallToolResult, ClientStatsOutput, error) {
	asOf := models.Today()
	if input.AsOf != "" {
		asOf = models.ParseDate(input.AsOf)
		if asOf.IsZero() {
			return nil, ClientStatsOutput{}, fmt.Errorf("invalid as_of: %q", input.AsOf)
		}
	}

	records, err := h.session.Records(ctx)
	if err != nil {
		return nil, ClientStatsOutput{}, fmt.Errorf("failed to fetch clients: %w", err)
	}

	stats := viz.GenerateStats(records, asOf)

	return nil, ClientStatsOutput{
		TotalClients:       stats.TotalClients,
		ActiveContracts:    stats.ActiveContracts,
		ByStatus:           stats.ByStatus,
		ByProduct:          stats.ByProduct,
		ByChannel:          stats.ByChannel,
		TotalDealAmount:    stats.TotalDealAmount.String(),
		TotalMonthlyVolume: stats.TotalMonthlyVolume.String(),
		AsOf:               stats.AsOf.String(),
		Dashboard:          viz.RenderDashboard(stats),
	}, nil
}

type GenerateGraphInput struct {
	AccountExec string `json:"account_exec,omitempty" jsonschema:"Only draw this account executive's clients"`
}

type GenerateGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateExecGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	filters := models.NewFilterState()
	filters.Set(models.FieldAccountExec, input.AccountExec)

	records, err := h.session.Records(ctx)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to fetch clients: %w", err)
	}
	records = view.Derive(records, filters, models.SortState{}, "")

	dot, err := viz.GenerateExecGraph(ctx, records)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	// Count nodes and edges for stats
	nodeCount := strings.Count(dot, "[label=")
	edgeCount := strings.Count(dot, "->")

	return nil, GenerateGraphOutput{
		DOTSource: dot,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}, nil
}
