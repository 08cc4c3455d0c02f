package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	language  lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	faint     lipgloss.Style
	errorText lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		language:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		faint:     lipgloss.NewStyle().Faint(true),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
