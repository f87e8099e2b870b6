// ABOUTME: Data models for client records
// ABOUTME: Defines Client, field names, and per-field value access
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a client attribute. Values match the JSON keys.
type Field string

const (
	FieldID            Field = "id"
	FieldCompany       Field = "company"
	FieldProduct       Field = "product"
	FieldStatus        Field = "status"
	FieldChannel       Field = "channel"
	FieldAccountExec   Field = "accountExec"
	FieldStartDate     Field = "startDate"
	FieldEndDate       Field = "endDate"
	FieldDealAmount    Field = "dealAmount"
	FieldMonthlyVolume Field = "monthlyVolume"
)

// Status values used by the sample data and the stats view. Status is free text,
// these are not enforced.
const (
	StatusActive   = "Active"
	StatusPending  = "Pending"
	StatusInactive = "Inactive"
)

var allFields = []Field{
	FieldID,
	FieldCompany,
	FieldProduct,
	FieldStatus,
	FieldChannel,
	FieldAccountExec,
	FieldStartDate,
	FieldEndDate,
	FieldDealAmount,
	FieldMonthlyVolume,
}

// RequiredFields must be non-empty after trimming for a client to be stored.
var RequiredFields = []Field{
	FieldCompany,
	FieldProduct,
	FieldStatus,
	FieldChannel,
	FieldAccountExec,
}

// FilterableFields get a filter selector in every table.
var FilterableFields = []Field{
	FieldProduct,
	FieldStatus,
	FieldAccountExec,
}

// Fields returns every client field in display order.
func Fields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ParseField accepts the JSON name, snake_case, or any casing of either.
func ParseField(s string) (Field, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	key = strings.ReplaceAll(key, "-", "")
	for _, f := range allFields {
		if strings.ToLower(string(f)) == key {
			return f, nil
		}
	}
	if key == "exec" || key == "accountexecutive" {
		return FieldAccountExec, nil
	}
	return "", fmt.Errorf("unknown field: %q", s)
}

// Label is the column heading for a field.
func (f Field) Label() string {
	switch f {
	case FieldID:
		return "ID"
	case FieldCompany:
		return "Company"
	case FieldProduct:
		return "Product"
	case FieldStatus:
		return "Status"
	case FieldChannel:
		return "Channel"
	case FieldAccountExec:
		return "Account Executive"
	case FieldStartDate:
		return "Start Date"
	case FieldEndDate:
		return "End Date"
	case FieldDealAmount:
		return "Deal Amount"
	case FieldMonthlyVolume:
		return "Monthly Volume"
	}
	return string(f)
}

// Numeric reports whether the field compares as a number.
func (f Field) Numeric() bool {
	return f == FieldID || f == FieldDealAmount || f == FieldMonthlyVolume
}

// Temporal reports whether the field compares as a calendar date.
func (f Field) Temporal() bool {
	return f == FieldStartDate || f == FieldEndDate
}

// Client is one customer relationship.
type Client struct {
	ID            int64  `json:"id" yaml:"id"`
	Company       string `json:"company" yaml:"company"`
	Product       string `json:"product" yaml:"product"`
	Status        string `json:"status" yaml:"status"`
	Channel       string `json:"channel" yaml:"channel"`
	AccountExec   string `json:"accountExec" yaml:"accountExec"`
	StartDate     Date   `json:"startDate,omitzero" yaml:"startDate,omitempty"`
	EndDate       Date   `json:"endDate,omitzero" yaml:"endDate,omitempty"`
	DealAmount    Amount `json:"dealAmount,omitzero" yaml:"dealAmount,omitempty"`
	MonthlyVolume Amount `json:"monthlyVolume,omitzero" yaml:"monthlyVolume,omitempty"`
}

// Value returns the textual value of a field. Absent optional fields are "".
func (c Client) Value(f Field) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(c.ID, 10)
	case FieldCompany:
		return c.Company
	case FieldProduct:
		return c.Product
	case FieldStatus:
		return c.Status
	case FieldChannel:
		return c.Channel
	case FieldAccountExec:
		return c.AccountExec
	case FieldStartDate:
		return c.StartDate.String()
	case FieldEndDate:
		return c.EndDate.String()
	case FieldDealAmount:
		return c.DealAmount.String()
	case FieldMonthlyVolume:
		return c.MonthlyVolume.String()
	}
	return ""
}

// Has reports whether the field carries a value.
func (c Client) Has(f Field) bool {
	switch f {
	case FieldID:
		return c.ID != 0
	case FieldStartDate:
		return !c.StartDate.IsZero()
	case FieldEndDate:
		return !c.EndDate.IsZero()
	case FieldDealAmount:
		return c.DealAmount.Valid
	case FieldMonthlyVolume:
		return c.MonthlyVolume.Valid
	}
	return c.Value(f) != ""
}

// Set assigns a field from text, the way a form submits it. Dates and amounts
// that do not parse become absent.
func (c *Client) Set(f Field, value string) {
	switch f {
	case FieldCompany:
		c.Company = value
	case FieldProduct:
		c.Product = value
	case FieldStatus:
		c.Status = value
	case FieldChannel:
		c.Channel = value
	case FieldAccountExec:
		c.AccountExec = value
	case FieldStartDate:
		c.StartDate = ParseDate(value)
	case FieldEndDate:
		c.EndDate = ParseDate(value)
	case FieldDealAmount:
		c.DealAmount = ParseAmount(value)
	case FieldMonthlyVolume:
		c.MonthlyVolume = ParseAmount(value)
	}
}

// ActiveOn reports whether the contract window covers the given day. A client
// without a start date is never active; a missing end date means open-ended.
func (c Client) ActiveOn(day Date) bool {
	if c.StartDate.IsZero() || day.Before(c.StartDate.Time) {
		return false
	}
	return c.EndDate.IsZero() || !day.After(c.EndDate.Time)
}
