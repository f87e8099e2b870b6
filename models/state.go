// ABOUTME: Table view-state owned by the presentation layer
// ABOUTME: Defines FilterState, SortState, and the table capability set
package models

import (
	"fmt"
	"sort"
	"strings"
)

// AllValues is the "no filter" sentinel used by filter selectors.
const AllValues = "all"

// FilterState maps a field to the exact value it must equal. Fields that are
// missing or hold AllValues are not applied.
type FilterState map[Field]string

// NewFilterState returns a state with every filterable field set to AllValues.
func NewFilterState() FilterState {
	fs := make(FilterState, len(FilterableFields))
	for _, f := range FilterableFields {
		fs[f] = AllValues
	}
	return fs
}

// Set selects a value for a field. "" and AllValues clear the filter.
func (fs FilterState) Set(f Field, value string) {
	if value == "" {
		value = AllValues
	}
	fs[f] = value
}

// Get returns the selected value, AllValues when unset.
func (fs FilterState) Get(f Field) string {
	if v, ok := fs[f]; ok && v != "" {
		return v
	}
	return AllValues
}

// Clear resets every field to AllValues.
func (fs FilterState) Clear() {
	for f := range fs {
		fs[f] = AllValues
	}
}

// ActiveFilter is one applied exact-match constraint.
type ActiveFilter struct {
	Field Field
	Value string
}

// Active lists applied filters, ordered by field name so callers see a stable order.
func (fs FilterState) Active() []ActiveFilter {
	var out []ActiveFilter
	for f, v := range fs {
		if v == "" || v == AllValues {
			continue
		}
		out = append(out, ActiveFilter{Field: f, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Clone copies the state so a caller can derive a new one without sharing.
func (fs FilterState) Clone() FilterState {
	out := make(FilterState, len(fs))
	for k, v := range fs {
		out[k] = v
	}
	return out
}

// Direction is the sort order of the active key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts asc/desc in any case; empty is ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction: %q", s)
}

// SortState holds at most one active key. An empty Key keeps input order.
type SortState struct {
	Key       Field
	Direction Direction
}

// Active reports whether a sort key is set.
func (s SortState) Active() bool {
	return s.Key != ""
}

// Toggle applies a column click: the same key flips direction, a new key
// starts ascending.
func (s SortState) Toggle(f Field) SortState {
	if s.Key == f {
		if s.Direction == Ascending {
			return SortState{Key: f, Direction: Descending}
		}
		return SortState{Key: f, Direction: Ascending}
	}
	return SortState{Key: f, Direction: Ascending}
}

// Indicator is the arrow shown next to a column heading.
func (s SortState) Indicator(f Field) string {
	if s.Key != f {
		return ""
	}
	if s.Direction == Descending {
		return " ↓"
	}
	return " ↑"
}

// Capabilities selects which table features a presentation exposes.
type Capabilities struct {
	Sortable   bool
	Filterable bool
	Searchable bool
	Tooltip    bool
}

// AllCapabilities enables every feature.
func AllCapabilities() Capabilities {
	return Capabilities{Sortable: true, Filterable: true, Searchable: true, Tooltip: true}
}

// ParseCapabilities reads a comma list such as "sort,filter". "all" enables
// everything and "none" disables everything.
func ParseCapabilities(s string) (Capabilities, error) {
	var c Capabilities
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "all":
			c = AllCapabilities()
		case "none":
			c = Capabilities{}
		case "sort", "sortable":
			c.Sortable = true
		case "filter", "filterable":
			c.Filterable = true
		case "search", "searchable":
			c.Searchable = true
		case "tooltip", "tooltips":
			c.Tooltip = true
		default:
			return Capabilities{}, fmt.Errorf("unknown capability: %q", part)
		}
	}
	return c, nil
}

func (c Capabilities) String() string {
	var parts []string
	if c.Sortable {
		parts = append(parts, "sort")
	}
	if c.Filterable {
		parts = append(parts, "filter")
	}
	if c.Searchable {
		parts = append(parts, "search")
	}
	if c.Tooltip {
		parts = append(parts, "tooltip")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
