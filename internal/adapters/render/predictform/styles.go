package predictform

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	focused   lipgloss.Style
	choice    lipgloss.Style
	faint     lipgloss.Style
	errorText lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		focused:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		choice:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		faint:     lipgloss.NewStyle().Faint(true),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
