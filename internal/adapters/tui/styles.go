package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/style"
)

var (
	listStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(style.Slate).MarginRight(1).PaddingRight(1)
	logStyle     = lipgloss.NewStyle().PaddingLeft(1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(style.Slate)
	runningStyle = lipgloss.NewStyle().Foreground(style.Yellow).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(style.Green)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red)
	cachedStyle  = lipgloss.NewStyle().Foreground(style.Slate).Faint(true)
)
