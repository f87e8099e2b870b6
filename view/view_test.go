// ABOUTME: Tests for the client list view-model
// ABOUTME: Covers filter, search, and sort semantics plus purity and stability properties
package view

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/clientdesk/models"
)

func twoClients() []models.Client {
	return []models.Client{
		{ID: 1, Company: "Acme", Product: "A", Status: "Active", Channel: "Direct", AccountExec: "Bob"},
		{ID: 2, Company: "Zeta", Product: "B", Status: "Pending", Channel: "Partner", AccountExec: "Alice"},
	}
}

func sampleClients() []models.Client {
	return []models.Client{
		{ID: 1, Company: "Acme", Product: "A", Status: "Active", Channel: "Direct", AccountExec: "Bob",
			DealAmount: models.AmountFromFloat(500), StartDate: models.ParseDate("2024-02-01")},
		{ID: 2, Company: "Zeta", Product: "B", Status: "Pending", Channel: "Partner", AccountExec: "Alice",
			DealAmount: models.AmountFromFloat(90)},
		{ID: 3, Company: "Globex", Product: "A", Status: "Active", Channel: "Partner", AccountExec: "Alice",
			StartDate: models.ParseDate("2023-11-15")},
		{ID: 4, Company: "Initech", Product: "C", Status: "Inactive", Channel: "Direct", AccountExec: "Bob",
			DealAmount: models.AmountFromFloat(1000)},
		{ID: 5, Company: "Acme", Product: "B", Status: "Active", Channel: "Online", AccountExec: "Carol",
			DealAmount: models.AmountFromFloat(90)},
	}
}

func ids(clients []models.Client) []int64 {
	out := make([]int64, len(clients))
	for i, c := range clients {
		out[i] = c.ID
	}
	return out
}

func TestDeriveFilterScenario(t *testing.T) {
	fs := models.NewFilterState()
	fs.Set(models.FieldProduct, "A")

	got := Derive(twoClients(), fs, models.SortState{}, "")
	assert.Equal(t, []int64{1}, ids(got))
}

func TestDeriveSearchScenario(t *testing.T) {
	got := Derive(twoClients(), models.NewFilterState(), models.SortState{}, "zeta")
	assert.Equal(t, []int64{2}, ids(got))

	got = Derive(twoClients(), models.NewFilterState(), models.SortState{}, "ZETA")
	assert.Equal(t, []int64{2}, ids(got))
}

func TestDeriveSortScenario(t *testing.T) {
	var s models.SortState
	s = s.Toggle(models.FieldCompany)
	asc := Derive(twoClients(), models.NewFilterState(), s, "")

	s = s.Toggle(models.FieldCompany)
	desc := Derive(twoClients(), models.NewFilterState(), s, "")

	assert.Equal(t, []string{"Acme", "Zeta"}, []string{asc[0].Company, asc[1].Company})
	assert.Equal(t, []string{"Zeta", "Acme"}, []string{desc[0].Company, desc[1].Company})
}

func TestDeriveFiltersComposeWithAnd(t *testing.T) {
	fs := models.NewFilterState()
	fs.Set(models.FieldStatus, "Active")
	fs.Set(models.FieldAccountExec, "Alice")

	got := Derive(sampleClients(), fs, models.SortState{}, "")
	assert.Equal(t, []int64{3}, ids(got))
}

func TestDeriveSearchSpansAllFields(t *testing.T) {
	got := Derive(sampleClients(), models.NewFilterState(), models.SortState{}, "online")
	assert.Equal(t, []int64{5}, ids(got))

	got = Derive(sampleClients(), models.NewFilterState(), models.SortState{}, "2023-11")
	assert.Equal(t, []int64{3}, ids(got))
}

func TestDeriveSearchDoesNotCrossFieldBoundary(t *testing.T) {
	got := Derive(twoClients(), models.NewFilterState(), models.SortState{}, "acmea")
	assert.Empty(t, got)
}

func TestDeriveEmptySearchMatchesEverything(t *testing.T) {
	got := Derive(sampleClients(), nil, models.SortState{}, "")
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

func TestDeriveNumericSortMissingLast(t *testing.T) {
	s := models.SortState{Key: models.FieldDealAmount}
	got := Derive(sampleClients(), nil, s, "")
	assert.Equal(t, []int64{2, 5, 1, 4, 3}, ids(got))

	s.Direction = models.Descending
	got = Derive(sampleClients(), nil, s, "")
	assert.Equal(t, []int64{4, 1, 2, 5, 3}, ids(got))
}

func TestDeriveDateSortMissingLast(t *testing.T) {
	s := models.SortState{Key: models.FieldStartDate, Direction: models.Descending}
	got := Derive(sampleClients(), nil, s, "")
	assert.Equal(t, []int64{1, 3, 2, 4, 5}, ids(got))
}

func TestDeriveSortIsStable(t *testing.T) {
	s := models.SortState{Key: models.FieldStatus}
	got := Derive(sampleClients(), nil, s, "")
	// Active ties keep input order 1, 3, 5.
	assert.Equal(t, []int64{1, 3, 5, 4, 2}, ids(got))

	s = s.Toggle(models.FieldStatus).Toggle(models.FieldStatus)
	again := Derive(sampleClients(), nil, s, "")
	if diff := cmp.Diff(ids(got), ids(again)); diff != "" {
		t.Errorf("toggling twice changed order (-want +got):\n%s", diff)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	records := sampleClients()
	before := sampleClients()

	fs := models.NewFilterState()
	fs.Set(models.FieldStatus, "Active")
	_ = Derive(records, fs, models.SortState{Key: models.FieldCompany, Direction: models.Descending}, "a")

	if diff := cmp.Diff(ids(before), ids(records)); diff != "" {
		t.Errorf("input reordered (-want +got):\n%s", diff)
	}
	assert.Equal(t, before[0].Company, records[0].Company)
}

func TestDeriveProperties(t *testing.T) {
	records := sampleClients()
	rng := rand.New(rand.NewSource(1))
	options := FilterOptions(records)
	sortKeys := models.Fields()

	for i := 0; i < 200; i++ {
		fs := models.NewFilterState()
		for _, f := range models.FilterableFields {
			opts := append([]string{models.AllValues}, options[f]...)
			fs.Set(f, opts[rng.Intn(len(opts))])
		}
		s := models.SortState{Key: sortKeys[rng.Intn(len(sortKeys))], Direction: models.Direction(rng.Intn(2))}
		search := []string{"", "a", "ACME", "partner", "zz"}[rng.Intn(5)]

		out := Derive(records, fs, s, search)

		// Subset, no duplicates.
		seen := map[int64]bool{}
		for _, c := range out {
			require.False(t, seen[c.ID], "duplicate id %d", c.ID)
			seen[c.ID] = true
			require.Contains(t, ids(records), c.ID)
		}

		// Deterministic.
		assert.Equal(t, ids(out), ids(Derive(records, fs, s, search)))

		// Filtering is idempotent.
		assert.Equal(t, ids(out), ids(Derive(out, fs, s, search)))

		// Ordered by the key, missing values last.
		for j := 1; j < len(out); j++ {
			a, b := out[j-1], out[j]
			if !b.Has(s.Key) {
				continue
			}
			require.True(t, a.Has(s.Key), "missing value sorted before present one")
			c := Compare(a, b, s.Key)
			if s.Direction == models.Descending {
				c = -c
			}
			require.LessOrEqual(t, c, 0)
		}
	}
}

func TestUniqueValuesIgnoresFilters(t *testing.T) {
	records := sampleClients()
	before := UniqueValues(records, models.FieldProduct)
	assert.Equal(t, []string{"A", "B", "C"}, before)

	fs := models.NewFilterState()
	fs.Set(models.FieldStatus, "Pending")
	_ = Derive(records, fs, models.SortState{}, "")

	assert.Equal(t, before, UniqueValues(records, models.FieldProduct))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, UniqueValues(records, models.FieldAccountExec))
}

func TestUniqueValuesSkipsEmpty(t *testing.T) {
	records := []models.Client{{ID: 1}, {ID: 2, Status: "Active"}}
	assert.Equal(t, []string{"Active"}, UniqueValues(records, models.FieldStatus))
	assert.Empty(t, UniqueValues(records, models.FieldDealAmount))
}

func TestQueryApplyHonorsCapabilities(t *testing.T) {
	q := NewQuery()
	q.Filters.Set(models.FieldStatus, "Active")
	q.Sort = models.SortState{Key: models.FieldCompany, Direction: models.Descending}
	q.Search = "acme"

	all := q.Apply(sampleClients(), models.AllCapabilities())
	assert.Equal(t, []int64{1, 5}, ids(all))

	none := q.Apply(sampleClients(), models.Capabilities{})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(none))

	sortOnly := q.Apply(sampleClients(), models.Capabilities{Sortable: true})
	assert.Equal(t, []int64{2, 4, 3, 1, 5}, ids(sortOnly))
}

func TestCycleOption(t *testing.T) {
	opts := []string{"A", "B"}
	assert.Equal(t, "A", CycleOption(opts, models.AllValues))
	assert.Equal(t, "B", CycleOption(opts, "A"))
	assert.Equal(t, models.AllValues, CycleOption(opts, "B"))
	assert.Equal(t, "A", CycleOption(opts, "gone"))
	assert.Equal(t, models.AllValues, CycleOption(nil, "A"))
}
