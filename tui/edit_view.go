// ABOUTME: Edit form view for TUI
// ABOUTME: Creates and updates clients through the session save flow
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/clientdesk/models"
)

func (m Model) renderEditView() string {
	var s strings.Builder

	// Title
	if m.selectedID == 0 {
		s.WriteString(titleStyle.Render("NEW CLIENT"))
	} else {
		s.WriteString(titleStyle.Render("EDIT CLIENT"))
	}
	s.WriteString("\n\n")

	// Form fields
	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(fieldLabelStyle.Render(m.formFields[i].Label()))
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	if status := m.renderStatus(); status != "" {
		s.WriteString("\n")
		s.WriteString(status)
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Shift+Tab: Previous field",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = m.returnTo
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		cmd := m.updateFormFocus()
		return m, cmd
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex - 1 + len(m.formInputs)) % len(m.formInputs)
		cmd := m.updateFormFocus()
		return m, cmd
	case "enter":
		m.saveClient(m.ctx)
		return m, nil
	}

	// Update current input
	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

// initFormInputs builds one input per editable field, filled from the
// selected client when editing.
func (m *Model) initFormInputs() tea.Cmd {
	var existing models.Client
	if m.selectedID != 0 {
		existing, _ = m.findClient(m.selectedID)
	}

	m.formFields = nil
	m.formInputs = nil
	for _, f := range models.Fields() {
		if f == models.FieldID {
			continue
		}

		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 100
		switch {
		case f.Temporal():
			input.Placeholder = models.DateLayout
			input.CharLimit = len(models.DateLayout)
		case f.Numeric():
			input.Placeholder = "0.00"
			input.CharLimit = 20
		default:
			input.Placeholder = f.Label()
		}
		input.SetValue(existing.Value(f))

		m.formFields = append(m.formFields, f)
		m.formInputs = append(m.formInputs, input)
	}

	m.focusIndex = 0
	m.status = nil
	return m.updateFormFocus()
}

func (m *Model) updateFormFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.formInputs {
		if i == m.focusIndex {
			cmd = m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
	return cmd
}

// saveClient submits the form. A rejected candidate keeps the form open with
// what the user typed.
func (m *Model) saveClient(ctx context.Context) {
	candidate := models.Client{ID: m.selectedID}
	for i, f := range m.formFields {
		candidate.Set(f, m.formInputs[i].Value())
	}

	out, err := m.session.Save(ctx, &candidate)
	m.setStatus(out.Message)
	if err != nil {
		return
	}

	m.selectedID = candidate.ID
	m.viewMode = m.returnTo
	m.refresh()
}
