package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/view"
)

// columnWidths matches tableColumns.
var columnWidths = []int{24, 12, 12, 12, 20}

// tooltipFields are shown for the highlighted row.
var tooltipFields = []models.Field{
	models.FieldStartDate,
	models.FieldEndDate,
	models.FieldDealAmount,
	models.FieldMonthlyVolume,
}

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("CLIENTDESK"))
	s.WriteString("\n\n")

	caps := m.session.Caps
	if caps.Filterable {
		s.WriteString(m.renderFilters())
		s.WriteString("\n")
	}
	if m.searching {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n")
	} else if caps.Searchable && m.query.Search != "" {
		s.WriteString(filterInactiveStyle.Render("Search: " + m.query.Search))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	// Table
	s.WriteString(m.renderTable())
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Showing %d of %d clients\n", len(m.visible), len(m.records)))

	if caps.Tooltip {
		if c, ok := m.selected(); ok {
			s.WriteString("\n")
			s.WriteString(renderTooltip(c))
		}
	}

	if status := m.renderStatus(); status != "" {
		s.WriteString("\n")
		s.WriteString(status)
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderFilters() string {
	var rendered []string
	for _, f := range models.FilterableFields {
		value := m.query.Filters.Get(f)
		label := f.Label() + ": " + value
		if value == models.AllValues {
			rendered = append(rendered, filterInactiveStyle.Render(label))
		} else {
			rendered = append(rendered, filterActiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	columns := make([]table.Column, len(tableColumns))
	for i, f := range tableColumns {
		title := f.Label()
		if m.session.Caps.Sortable {
			title += m.query.Sort.Indicator(f)
		}
		columns[i] = table.Column{Title: title, Width: columnWidths[i]}
	}

	var rows []table.Row
	for _, c := range m.visible {
		row := make(table.Row, len(tableColumns))
		for i, f := range tableColumns {
			row[i] = c.Value(f)
		}
		rows = append(rows, row)
	}

	height := m.height - 14
	if height < 5 {
		height = 5
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Set selected row
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

// renderTooltip summarizes the contract details not shown in the table.
func renderTooltip(c models.Client) string {
	var parts []string
	for _, f := range tooltipFields {
		if c.Has(f) {
			parts = append(parts, f.Label()+": "+c.Value(f))
		}
	}
	if len(parts) == 0 {
		return filterInactiveStyle.Render("No contract details") + "\n"
	}
	return filterInactiveStyle.Render(strings.Join(parts, "  ")) + "\n"
}

func (m Model) renderListHelp() string {
	if m.searching {
		return helpStyle.Render("Enter: Apply • Esc: Clear search")
	}

	caps := m.session.Caps
	help := []string{"↑/↓: Navigate"}
	if caps.Searchable {
		help = append(help, "/: Search")
	}
	if caps.Sortable {
		help = append(help, "1-5: Sort")
	}
	if caps.Filterable {
		help = append(help, "p/t/e: Filter", "c: Clear")
	}
	help = append(help,
		"v: Details",
		"Enter: Edit",
		"n: New",
		"d: Delete",
		"q: Quit",
	)
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	caps := m.session.Caps
	key := msg.String()

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.visible)-1 {
			m.selectedRow++
		}
	case "/":
		if caps.Searchable {
			m.searching = true
			m.searchInput.SetValue(m.query.Search)
			cmd := m.searchInput.Focus()
			return m, cmd
		}
	case "1", "2", "3", "4", "5":
		if caps.Sortable {
			f := tableColumns[int(key[0]-'1')]
			m.query.Sort = m.query.Sort.Toggle(f)
			m.rederive()
		}
	case "p", "t", "e":
		if caps.Filterable {
			f := filterKeys[key]
			m.query.Filters.Set(f, view.CycleOption(m.options[f], m.query.Filters.Get(f)))
			m.selectedRow = 0
			m.rederive()
		}
	case "c":
		if caps.Filterable {
			m.query.Filters.Clear()
			m.query.Search = ""
			m.selectedRow = 0
			m.rederive()
		}
	case "v":
		if c, ok := m.selected(); ok {
			m.selectedID = c.ID
			m.viewMode = ViewDetail
		}
	case "enter":
		if c, ok := m.selected(); ok {
			m.selectedID = c.ID
			m.returnTo = ViewList
			m.viewMode = ViewEdit
			cmd := m.initFormInputs()
			return m, cmd
		}
	case "n":
		m.selectedID = 0
		m.returnTo = ViewList
		m.viewMode = ViewEdit
		cmd := m.initFormInputs()
		return m, cmd
	case "d":
		if c, ok := m.selected(); ok {
			m.selectedID = c.ID
			m.returnTo = ViewList
			m.viewMode = ViewConfirmDelete
		}
	}

	return m, nil
}

// handleSearchKeys filters the table as the user types. Enter keeps the
// search, Esc clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.query.Search = ""
		m.rederive()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query.Search = m.searchInput.Value()
	m.selectedRow = 0
	m.rederive()
	return m, cmd
}
