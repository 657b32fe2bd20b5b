package theme

import "github.com/charmbracelet/lipgloss"

// Colors are named by role.
var (
	Ink       = lipgloss.Color("#1e1e2e")
	Panel     = lipgloss.Color("#181825")
	EmptyCell = lipgloss.Color("#313244")
	Border    = lipgloss.Color("#45475a")
	Text      = lipgloss.Color("#cdd6f4")
	Dim       = lipgloss.Color("#a6adc8")
	Focus     = lipgloss.Color("#b4befe")
	Accent    = lipgloss.Color("#74c7ec")
	Positive  = lipgloss.Color("#a6e3a1")
	Warm      = lipgloss.Color("#fab387")
	Negative  = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Panel).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Focus)

	Title = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Dim)
	Hot   = lipgloss.NewStyle().Foreground(Warm).Bold(true)
	Bad   = lipgloss.NewStyle().Foreground(Negative).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Positive).Bold(true)
)

// Day paints a calendar cell in the category's chart color. An empty color
// means no entry for that day.
func Day(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle().Foreground(Dim).Background(EmptyCell)
	}
	return lipgloss.NewStyle().Foreground(Ink).Background(lipgloss.Color(color)).Bold(true)
}

// Swatch is a foreground-only style in a category color, used by legends and bars.
func Swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
