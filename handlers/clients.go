// ABOUTME: Client MCP tool handlers
// ABOUTME: Implements add_client, update_client, delete_client, and get_client tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/session"
)

type ClientHandlers struct {
	session *session.Session
}

func NewClientHandlers(s *session.Session) *ClientHandlers {
	return &ClientHandlers{session: s}
}

type AddClientInput struct {
	Company       string `json:"company" jsonschema:"Company name (required)"`
	Product       string `json:"product" jsonschema:"Product the client buys (required)"`
	Status        string `json:"status" jsonschema:"Relationship status, e.g. Active, Pending, Inactive (required)"`
	Channel       string `json:"channel" jsonschema:"Sales channel (required)"`
	AccountExec   string `json:"account_exec" jsonschema:"Account executive who owns the client (required)"`
	StartDate     string `json:"start_date,omitempty" jsonschema:"Contract start date (YYYY-MM-DD)"`
	EndDate       string `json:"end_date,omitempty" jsonschema:"Contract end date (YYYY-MM-DD)"`
	DealAmount    string `json:"deal_amount,omitempty" jsonschema:"Deal amount; non-numeric values are dropped"`
	MonthlyVolume string `json:"monthly_volume,omitempty" jsonschema:"Monthly volume; non-numeric values are dropped"`
}

type ClientOutput struct {
	ID            int64  `json:"id"`
	Company       string `json:"company"`
	Product       string `json:"product"`
	Status        string `json:"status"`
	Channel       string `json:"channel"`
	AccountExec   string `json:"account_exec"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	DealAmount    string `json:"deal_amount,omitempty"`
	MonthlyVolume string `json:"monthly_volume,omitempty"`
}

func (h *ClientHandlers) AddClient(ctx context.Context, request *mcp.CallToolRequest, input AddClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	client := &models.Client{
		Company:     input.Company,
		Product:     input.Product,
		Status:      input.Status,
		Channel:     input.Channel,
		AccountExec: input.AccountExec,
	}
	client.Set(models.FieldStartDate, input.StartDate)
	client.Set(models.FieldEndDate, input.EndDate)
	client.Set(models.FieldDealAmount, input.DealAmount)
	client.Set(models.FieldMonthlyVolume, input.MonthlyVolume)

	if _, err := h.session.Save(ctx, client); err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to create client: %w", err)
	}

	return nil, clientToOutput(client), nil
}

type UpdateClientInput struct {
	ID            int64   `json:"id" jsonschema:"ID of the client to update (required)"`
	Company       *string `json:"company,omitempty" jsonschema:"New company name"`
	Product       *string `json:"product,omitempty" jsonschema:"New product"`
	Status        *string `json:"status,omitempty" jsonschema:"New status"`
	Channel       *string `json:"channel,omitempty" jsonschema:"New channel"`
	AccountExec   *string `json:"account_exec,omitempty" jsonschema:"New account executive"`
	StartDate     *string `json:"start_date,omitempty" jsonschema:"New start date (YYYY-MM-DD); empty clears it"`
	EndDate       *string `json:"end_date,omitempty" jsonschema:"New end date (YYYY-MM-DD); empty clears it"`
	DealAmount    *string `json:"deal_amount,omitempty" jsonschema:"New deal amount; empty clears it"`
	MonthlyVolume *string `json:"monthly_volume,omitempty" jsonschema:"New monthly volume; empty clears it"`
}

// fields pairs each optional input with the field it edits.
func (in UpdateClientInput) fields() map[models.Field]*string {
	return map[models.Field]*string{
		models.FieldCompany:       in.Company,
		models.FieldProduct:       in.Product,
		models.FieldStatus:        in.Status,
		models.FieldChannel:       in.Channel,
		models.FieldAccountExec:   in.AccountExec,
		models.FieldStartDate:     in.StartDate,
		models.FieldEndDate:       in.EndDate,
		models.FieldDealAmount:    in.DealAmount,
		models.FieldMonthlyVolume: in.MonthlyVolume,
	}
}

// UpdateClient edits only the fields present in the input. The merged
// record must still carry every required field.
func (h *ClientHandlers) UpdateClient(ctx context.Context, request *mcp.CallToolRequest, input UpdateClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	if input.ID == 0 {
		return nil, ClientOutput{}, fmt.Errorf("id is required")
	}

	client, err := h.session.Clients.Get(ctx, input.ID)
	if err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to get client: %w", err)
	}

	for field, value := range input.fields() {
		if value != nil {
			client.Set(field, *value)
		}
	}

	if _, err := h.session.Save(ctx, client); err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to update client: %w", err)
	}

	return nil, clientToOutput(client), nil
}

type ClientIDInput struct {
	ID int64 `json:"id" jsonschema:"Client ID (required)"`
}

type DeleteClientOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (h *ClientHandlers) DeleteClient(ctx context.Context, request *mcp.CallToolRequest, input ClientIDInput) (*mcp.CallToolResult, DeleteClientOutput, error) {
	if input.ID == 0 {
		return nil, DeleteClientOutput{}, fmt.Errorf("id is required")
	}

	out, err := h.session.Delete(ctx, input.ID)
	if err != nil {
		return nil, DeleteClientOutput{}, fmt.Errorf("failed to delete client: %w", err)
	}

	return nil, DeleteClientOutput{ID: input.ID, Message: out.Message.Text}, nil
}

func (h *ClientHandlers) GetClient(ctx context.Context, request *mcp.CallToolRequest, input ClientIDInput) (*mcp.CallToolResult, ClientOutput, error) {
	client, err := h.session.Clients.Get(ctx, input.ID)
	if err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to get client: %w", err)
	}

	return nil, clientToOutput(client), nil
}

func clientToOutput(c *models.Client) ClientOutput {
	return ClientOutput{
		ID:            c.ID,
		Company:       c.Company,
		Product:       c.Product,
		Status:        c.Status,
		Channel:       c.Channel,
		AccountExec:   c.AccountExec,
		StartDate:     c.StartDate.String(),
		EndDate:       c.EndDate.String(),
		DealAmount:    c.DealAmount.String(),
		MonthlyVolume: c.MonthlyVolume.String(),
	}
}
