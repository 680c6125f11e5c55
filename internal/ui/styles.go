package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	heading   lipgloss.Style
	empty     lipgloss.Style
	overdue   lipgloss.Style
	pastDue   lipgloss.Style
	completed lipgloss.Style
	selected  lipgloss.Style
	id        lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
	help      lipgloss.Style
	barFull   lipgloss.Style
	barEmpty  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain, heading: plain, empty: plain, overdue: plain,
			pastDue: plain, completed: plain, selected: plain, id: plain,
			status: plain, errStatus: plain, help: plain, barFull: plain, barEmpty: plain,
		}
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		heading:   lipgloss.NewStyle().Bold(true).Underline(true),
		empty:     lipgloss.NewStyle().Faint(true).Italic(true),
		overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		pastDue:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		completed: lipgloss.NewStyle().Faint(true).Strikethrough(true),
		selected:  lipgloss.NewStyle().Reverse(true),
		id:        lipgloss.NewStyle().Faint(true),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		help:      lipgloss.NewStyle().Faint(true),
		barFull:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		barEmpty:  lipgloss.NewStyle().Faint(true),
	}
}

// progressBar renders percent as a fixed-width bar.
func progressBar(s styles, percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return s.barFull.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", width-filled))
}
