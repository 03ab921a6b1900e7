// Package console is the terminal presentation layer: the interactive
// per-error prompt and the read-only scan report. All document and decision
// logic stays out of this package.
package console

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2196F3"))

	labelStyle = lipgloss.NewStyle().
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4db6ac"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd54f"))

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A"))

	noFixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))
)
