// ABOUTME: Client list view-model shared by every table presentation
// ABOUTME: Derives the visible, ordered records from filter, search, and sort state
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/harperreed/clientdesk/models"
)

// searchSeparator joins field values for search so a pattern cannot match
// across a field boundary by accident.
const searchSeparator = "\x1f"

// Derive returns the records to display: active filters first (AND), then the
// case-insensitive search, then a stable sort. records is never modified.
func Derive(records []models.Client, filters models.FilterState, sort models.SortState, search string) []models.Client {
	active := filters.Active()
	needle := strings.ToLower(search)

	out := make([]models.Client, 0, len(records))
	for _, c := range records {
		if !matchesFilters(c, active) {
			continue
		}
		if needle != "" && !strings.Contains(searchText(c), needle) {
			continue
		}
		out = append(out, c)
	}

	if sort.Active() {
		slices.SortStableFunc(out, comparator(sort))
	}
	return out
}

func matchesFilters(c models.Client, active []models.ActiveFilter) bool {
	for _, f := range active {
		if c.Value(f.Field) != f.Value {
			return false
		}
	}
	return true
}

func searchText(c models.Client) string {
	fields := models.Fields()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = c.Value(f)
	}
	return strings.ToLower(strings.Join(values, searchSeparator))
}

// comparator orders by the sort key. Records missing the key sort last in
// both directions.
func comparator(s models.SortState) func(a, b models.Client) int {
	return func(a, b models.Client) int {
		aHas, bHas := a.Has(s.Key), b.Has(s.Key)
		switch {
		case !aHas && !bHas:
			return 0
		case !aHas:
			return 1
		case !bHas:
			return -1
		}

		c := Compare(a, b, s.Key)
		if s.Direction == models.Descending {
			return -c
		}
		return c
	}
}

// Compare is the three-way comparison of two present values of a field:
// numbers numerically, dates chronologically, text by string order.
func Compare(a, b models.Client, f models.Field) int {
	switch f {
	case models.FieldID:
		return cmp.Compare(a.ID, b.ID)
	case models.FieldDealAmount:
		return a.DealAmount.Compare(b.DealAmount)
	case models.FieldMonthlyVolume:
		return a.MonthlyVolume.Compare(b.MonthlyVolume)
	case models.FieldStartDate:
		return a.StartDate.Compare(b.StartDate)
	case models.FieldEndDate:
		return a.EndDate.Compare(b.EndDate)
	}
	return strings.Compare(a.Value(f), b.Value(f))
}

// UniqueValues returns the distinct non-empty values of a field, sorted.
// Callers pass the full collection so options do not shrink as filters apply.
func UniqueValues(records []models.Client, f models.Field) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range records {
		v := c.Value(f)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// FilterOptions computes UniqueValues for every filterable field.
func FilterOptions(records []models.Client) map[models.Field][]string {
	opts := make(map[models.Field][]string, len(models.FilterableFields))
	for _, f := range models.FilterableFields {
		opts[f] = UniqueValues(records, f)
	}
	return opts
}
