package picker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewContent())

	return b.String()
}

// viewContent renders the result list or a status message.
func (m Model) viewContent() string {
	switch m.state {
	case stateIdle, stateLoading:
		return dimStyle.Render("Loading…")

	case stateEmpty:
		if queryIsEmpty(m.input.Value()) {
			return dimStyle.Render("Type to search")
		}
		return dimStyle.Render("No matches")

	case stateCancelled:
		return dimStyle.Render("Cancelled")

	case stateLoaded:
		return m.viewList()

	default:
		return ""
	}
}

// viewList renders the visible window of header and item rows.
func (m Model) viewList() string {
	window := m.visibleWindow()
	selected := m.selectionOffset()

	var b strings.Builder
	for i, r := range window {
		if i > 0 {
			b.WriteRune('\n')
		}
		if r.header {
			b.WriteString(headerStyle.Render(string(r.category)))
			continue
		}
		b.WriteString(m.viewItem(r, i == selected))
	}
	return b.String()
}

// viewItem renders one result line: marker, icon, title, dim description.
func (m Model) viewItem(r row, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	title := marker
	if r.item.Icon != "" {
		title += r.item.Icon + " "
	}
	title += StripANSI(r.item.Title)

	desc := StripANSI(r.item.Description)
	if desc == "" {
		desc = r.item.URL
	}

	// Truncate to terminal width, title before description.
	if m.width > 4 {
		budget := m.width - 2
		title = MiddleTruncate(title, budget)
		remaining := budget - lipgloss.Width(title) - 3
		if remaining <= 4 {
			desc = ""
		} else {
			desc = MiddleTruncate(desc, remaining)
		}
	}

	style := normalStyle
	if selected {
		style = selectedStyle
	}
	line := style.Render(title)
	if desc != "" {
		line += descStyle.Render("  " + desc)
	}
	return line
}
