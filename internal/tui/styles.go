package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for the repository name.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SectionStyle is used for section headings.
	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")). // Light purple
			Bold(true)

	// NormalItemStyle is used for body text.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// MutedStyle is used for secondary details.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// PromptStyle is used for the loading line.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")) // Light blue

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray
			MarginTop(1)
)
