package prediction

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	yield      lipgloss.Style
	detail     lipgloss.Style
	positive   lipgloss.Style
	negative   lipgloss.Style
	section    lipgloss.Style
	limitKey   lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		yield:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		positive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("120")),
		negative:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		limitKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
