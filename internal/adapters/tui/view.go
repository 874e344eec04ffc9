package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/style"
)

// View renders the phase list next to the output of the active phase.
func (m *Model) View() string {
	if m.Viewport.Height == 0 {
		return "Starting..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.phaseList(),
		m.logPane(),
	)
}

func (m *Model) phaseList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("PHASES") + "\n\n")

	active := m.active()
	for i, phase := range m.Phases {
		var (
			st   lipgloss.Style
			icon string
		)
		switch phase.Status {
		case StatusRunning:
			st, icon = runningStyle, m.spinner.View()
		case StatusError:
			st, icon = errorStyle, style.Cross
		default:
			st, icon = doneStyle, style.Check
		}
		if phase.Cached {
			st, icon = cachedStyle, style.Check
		}

		marker := "  "
		if i == active {
			marker = "> "
		}
		s.WriteString(st.Render(fmt.Sprintf("%s%s %s", marker, icon, phase.Name)) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) logPane() string {
	header := "OUTPUT"
	if i := m.active(); i >= 0 {
		header += ": " + m.Phases[i].Name
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render(header),
			m.Viewport.View(),
		),
	)
}
