package theme

import "github.com/charmbracelet/lipgloss"

var (
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Sapphire = lipgloss.Color("#74c7ec")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)

	CriticalTitle = lipgloss.NewStyle().Foreground(Red).Bold(true)
	CriticalBox   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Text).
			Padding(0, 1)
)

// Critical renders an error dialog for the terminal.
func Critical(title, message string) string {
	return CriticalBox.Render(lipgloss.JoinVertical(lipgloss.Left, CriticalTitle.Render(title), "", message))
}
