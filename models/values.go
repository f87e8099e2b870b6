// ABOUTME: Optional date and amount value types for client records
// ABOUTME: Malformed input parses to an absent value instead of an error
package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DateLayout is the wire and display format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date. The zero value means the date is absent.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today is the current calendar day.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses YYYY-MM-DD. Anything else is absent.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// RFC 3339 timestamps come back from some JSON encoders
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return Date{}
		}
	}
	return NewDate(t)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Compare is a three-way comparison on the calendar day.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	*d = ParseDate(strings.Trim(string(data), `"`))
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	*d = ParseDate(node.Value)
	return nil
}

// Value stores the date as TEXT, NULL when absent.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case string:
		*d = ParseDate(v)
	case []byte:
		*d = ParseDate(string(v))
	case time.Time:
		*d = NewDate(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// Amount is an optional exact quantity such as a deal amount or a monthly
// volume. The zero value is absent. Negative values are accepted as given.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount wraps a present value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// AmountFromFloat is a convenience for literals in tests and seed code.
func AmountFromFloat(f float64) Amount {
	return NewAmount(decimal.NewFromFloat(f))
}

// ParseAmount parses a decimal number. Non-numeric input is absent.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return NewAmount(d)
}

// IsZero reports absence so that omitzero drops the field.
func (a Amount) IsZero() bool {
	return !a.Valid
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}

// Compare is a three-way numeric comparison of two present amounts.
func (a Amount) Compare(o Amount) int {
	return a.Decimal.Cmp(o.Decimal)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	*a = ParseAmount(strings.Trim(string(data), `"`))
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Decimal.InexactFloat64(), nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	*a = ParseAmount(node.Value)
	return nil
}

// Value stores the amount as exact TEXT, NULL when absent.
func (a Amount) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Decimal.String(), nil
}

func (a *Amount) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
	case string:
		*a = ParseAmount(v)
	case []byte:
		*a = ParseAmount(string(v))
	case int64:
		*a = NewAmount(decimal.NewFromInt(v))
	case float64:
		*a = NewAmount(decimal.NewFromFloat(v))
	default:
		return fmt.Errorf("cannot scan %T into Amount", src)
	}
	return nil
}
