// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides an interactive client table with sort, filter, search, and edit flows
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/session"
	"github.com/harperreed/clientdesk/view"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewConfirmDelete
)

// tableColumns are the columns of the client table, in sort-key order.
var tableColumns = []models.Field{
	models.FieldCompany,
	models.FieldProduct,
	models.FieldStatus,
	models.FieldChannel,
	models.FieldAccountExec,
}

// filterKeys cycles the selector for each filterable field.
var filterKeys = map[string]models.Field{
	"p": models.FieldProduct,
	"t": models.FieldStatus,
	"e": models.FieldAccountExec,
}

// Model is the main bubbletea model
type Model struct {
	ctx      context.Context
	session  *session.Session
	viewMode ViewMode

	// List view state
	query       view.Query
	records     []models.Client
	visible     []models.Client
	options     map[models.Field][]string
	selectedRow int
	searching   bool
	searchInput textinput.Model

	// Detail, edit, and delete state
	selectedID int64
	returnTo   ViewMode

	// Edit view state
	formFields []models.Field
	formInputs []textinput.Model
	focusIndex int

	// UI state
	status *notify.Message
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model over a session.
func NewModel(ctx context.Context, s *session.Session) Model {
	search := textinput.New()
	search.Placeholder = "Search clients"
	search.Prompt = "/ "
	search.CharLimit = 100

	m := Model{
		ctx:         ctx,
		session:     s,
		viewMode:    ViewList,
		query:       view.NewQuery(),
		searchInput: search,
		width:       100,
		height:      24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// refresh reloads the store and re-derives the visible rows.
func (m *Model) refresh() {
	records, err := m.session.Records(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.records = records
	m.options = view.FilterOptions(records)
	m.rederive()
}

// rederive applies the current query without touching the store.
func (m *Model) rederive() {
	m.visible = m.query.Apply(m.records, m.session.Caps)
	if m.selectedRow >= len(m.visible) {
		m.selectedRow = len(m.visible) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// selected returns the highlighted client.
func (m Model) selected() (models.Client, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return models.Client{}, false
	}
	return m.visible[m.selectedRow], true
}

// findClient looks up a client among the loaded records.
func (m Model) findClient(id int64) (models.Client, bool) {
	for _, c := range m.records {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

func (m *Model) setStatus(msg notify.Message) {
	m.status = &msg
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	filterActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	filterInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.status == nil {
		return ""
	}
	if m.status.Level == notify.Error {
		return errorStyle.Render(m.status.Text)
	}
	return successStyle.Render(m.status.Text)
}
