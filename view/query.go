package view

import (
	"github.com/harperreed/clientdesk/models"
)

// Query bundles the view-state a table holds between events.
type Query struct {
	Filters models.FilterState
	Sort    models.SortState
	Search  string
}

// NewQuery starts with no filters, no sort, and an empty search.
func NewQuery() Query {
	return Query{Filters: models.NewFilterState()}
}

// Apply derives the visible records. State for features the capability set
// disables is ignored, so a table without search never hides rows by a stale
// search string.
func (q Query) Apply(records []models.Client, caps models.Capabilities) []models.Client {
	filters := q.Filters
	if !caps.Filterable || filters == nil {
		filters = models.FilterState{}
	}
	sort := q.Sort
	if !caps.Sortable {
		sort = models.SortState{}
	}
	search := q.Search
	if !caps.Searchable {
		search = ""
	}
	return Derive(records, filters, sort, search)
}

// CycleOption steps a filter selector to the next option, wrapping through
// AllValues. An unknown current value restarts at the first option.
func CycleOption(options []string, current string) string {
	if len(options) == 0 {
		return models.AllValues
	}
	if current == "" || current == models.AllValues {
		return options[0]
	}
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return models.AllValues
		}
	}
	return options[0]
}
