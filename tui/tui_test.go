package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/clientdesk/db"
	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/session"
)

func setupTestModel(t *testing.T, caps models.Capabilities) (Model, *session.Session) {
	t.Helper()
	database, err := db.OpenDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	repo := db.NewClientsRepository(database)
	require.NoError(t, repo.Import(context.Background(), []models.Client{
		{ID: 1, Company: "Acme", Product: "A", Status: "Active", Channel: "Direct", AccountExec: "Bob",
			DealAmount: models.ParseAmount("1200")},
		{ID: 2, Company: "Zeta", Product: "B", Status: "Pending", Channel: "Partner", AccountExec: "Alice"},
		{ID: 3, Company: "Mid", Product: "A", Status: "Inactive", Channel: "Direct", AccountExec: "Bob"},
	}))

	s := session.New(repo, notify.NewCenter(log.New(io.Discard), 0), caps)
	return NewModel(context.Background(), s), s
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func companies(m Model) []string {
	out := make([]string, len(m.visible))
	for i, c := range m.visible {
		out[i] = c.Company
	}
	return out
}

func TestNewModelShowsAllClients(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, []string{"Acme", "Zeta", "Mid"}, companies(m))

	out := m.View()
	assert.Contains(t, out, "CLIENTDESK")
	assert.Contains(t, out, "Showing 3 of 3 clients")
	assert.Contains(t, out, "Deal Amount: 1200")
}

func TestSortKeysToggleDirection(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("1"))
	assert.Equal(t, []string{"Acme", "Mid", "Zeta"}, companies(m))
	assert.Contains(t, m.View(), "↑")

	m = press(t, m, keys("1"))
	assert.Equal(t, []string{"Zeta", "Mid", "Acme"}, companies(m))

	// A different column starts ascending
	m = press(t, m, keys("5"))
	assert.Equal(t, models.SortState{Key: models.FieldAccountExec, Direction: models.Ascending}, m.query.Sort)
	assert.Equal(t, "Zeta", companies(m)[0])
}

func TestFilterKeysCycleOptions(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("p"))
	assert.Equal(t, "A", m.query.Filters.Get(models.FieldProduct))
	assert.Equal(t, []string{"Acme", "Mid"}, companies(m))

	m = press(t, m, keys("p"))
	assert.Equal(t, []string{"Zeta"}, companies(m))

	m = press(t, m, keys("p"))
	assert.Equal(t, models.AllValues, m.query.Filters.Get(models.FieldProduct))
	assert.Len(t, m.visible, 3)

	m = press(t, m, keys("e"), keys("t"))
	assert.Equal(t, "Alice", m.query.Filters.Get(models.FieldAccountExec))
	assert.Equal(t, "Active", m.query.Filters.Get(models.FieldStatus))
	assert.Empty(t, m.visible)
	assert.Contains(t, m.View(), "Showing 0 of 3 clients")

	m = press(t, m, keys("c"))
	assert.Len(t, m.visible, 3)
}

func TestSearchMode(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("/"))
	require.True(t, m.searching)

	// Filter keys type into the search box
	m = press(t, m, keys("p"), keys("a"), keys("r"))
	assert.Equal(t, "par", m.query.Search)
	assert.Equal(t, []string{"Zeta"}, companies(m))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, []string{"Zeta"}, companies(m))
	assert.Contains(t, m.View(), "Search: par")

	m = press(t, m, keys("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Empty(t, m.query.Search)
	assert.Len(t, m.visible, 3)
}

func TestCapabilitiesGateKeys(t *testing.T) {
	m, _ := setupTestModel(t, models.Capabilities{})

	m = press(t, m, keys("1"), keys("p"), keys("/"))
	assert.False(t, m.searching)
	assert.False(t, m.query.Sort.Active())
	assert.Equal(t, []string{"Acme", "Zeta", "Mid"}, companies(m))

	out := m.View()
	assert.NotContains(t, out, "1-5: Sort")
	assert.NotContains(t, out, "/: Search")
	assert.NotContains(t, out, "Deal Amount")
}

func TestNavigationClamps(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.selectedRow)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.selectedRow)

	c, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Mid", c.Company)
}

func TestCreateClientRejectsMissingFields(t *testing.T) {
	m, s := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("n"))
	require.Equal(t, ViewEdit, m.viewMode)
	assert.Contains(t, m.View(), "NEW CLIENT")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewEdit, m.viewMode)
	require.NotNil(t, m.status)
	assert.Equal(t, notify.MsgRequiredFields, m.status.Text)

	count, err := s.Clients.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCreateClient(t *testing.T) {
	m, s := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("n"))
	values := map[models.Field]string{
		models.FieldCompany:     "Nova",
		models.FieldProduct:     "C",
		models.FieldStatus:      "Active",
		models.FieldChannel:     "Web",
		models.FieldAccountExec: "Cara",
		models.FieldStartDate:   "2025-02-01",
	}
	for i, f := range m.formFields {
		m.formInputs[i].SetValue(values[f])
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewList, m.viewMode)
	require.NotNil(t, m.status)
	assert.Equal(t, notify.MsgClientCreated, m.status.Text)
	assert.Contains(t, companies(m), "Nova")

	created, err := s.Clients.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", created.StartDate.String())
}

func TestEditClient(t *testing.T) {
	m, s := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewEdit, m.viewMode)
	assert.Equal(t, "Acme", m.formInputs[0].Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusIndex)

	m.formInputs[0].SetValue("Acme Corp")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, notify.MsgClientUpdated, m.status.Text)

	updated, err := s.Clients.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Company)
	assert.Equal(t, "1200", updated.DealAmount.String())
}

func TestEditCancel(t *testing.T) {
	m, s := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.formInputs[0].SetValue("Changed")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)

	c, err := s.Clients.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Company)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, s := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, keys("d"))
	require.Equal(t, ViewConfirmDelete, m.viewMode)
	assert.Contains(t, m.View(), "CLIENT: Acme")

	m = press(t, m, keys("n"))
	assert.Equal(t, ViewList, m.viewMode)
	count, err := s.Clients.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	m = press(t, m, keys("d"), keys("y"))
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, notify.MsgClientDeleted, m.status.Text)
	assert.Equal(t, []string{"Zeta", "Mid"}, companies(m))
	assert.Contains(t, m.View(), notify.MsgClientDeleted)
}

func TestDetailView(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, keys("v"))
	require.Equal(t, ViewDetail, m.viewMode)
	out := m.View()
	assert.Contains(t, out, "Zeta")
	assert.Contains(t, out, "Partner")

	m = press(t, m, keys("d"))
	assert.Equal(t, ViewConfirmDelete, m.viewMode)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDetail, m.viewMode)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowResize(t *testing.T) {
	m, _ := setupTestModel(t, models.AllCapabilities())

	m = press(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 40, m.height)
}
