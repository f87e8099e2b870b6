// ABOUTME: Validation of client records on the create and edit paths
// ABOUTME: Rejects candidates whose required text fields are blank
package models

import (
	"errors"
	"strings"
)

// ErrValidation is wrapped by every rejected candidate.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the required fields that were blank.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		labels[i] = f.Label()
	}
	return "please fill in all required fields: " + strings.Join(labels, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate accepts a candidate when every required text field is non-empty
// after trimming. Date ordering and amount signs are not checked.
func Validate(c Client) error {
	var missing []Field
	for _, f := range RequiredFields {
		if strings.TrimSpace(c.Value(f)) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Normalize trims surrounding whitespace from the text fields.
func Normalize(c Client) Client {
	c.Company = strings.TrimSpace(c.Company)
	c.Product = strings.TrimSpace(c.Product)
	c.Status = strings.TrimSpace(c.Status)
	c.Channel = strings.TrimSpace(c.Channel)
	c.AccountExec = strings.TrimSpace(c.AccountExec)
	return c
}
