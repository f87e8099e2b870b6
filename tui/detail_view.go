package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/clientdesk/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("CLIENT DETAIL"))
	s.WriteString("\n\n")

	c, ok := m.findClient(m.selectedID)
	if !ok {
		s.WriteString(fmt.Sprintf("Error: client %d not found\n", m.selectedID))
	} else {
		for _, f := range models.Fields() {
			s.WriteString(m.renderField(f.Label(), c.Value(f)))
		}
	}

	s.WriteString("\n")

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"e: Edit",
		"d: Delete",
		"Esc: Back",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewList
	case "e", "enter":
		if _, ok := m.findClient(m.selectedID); ok {
			m.returnTo = ViewDetail
			m.viewMode = ViewEdit
			cmd := m.initFormInputs()
			return m, cmd
		}
	case "d":
		if _, ok := m.findClient(m.selectedID); ok {
			m.returnTo = ViewDetail
			m.viewMode = ViewConfirmDelete
		}
	}

	return m, nil
}
