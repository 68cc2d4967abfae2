package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Format badges
	BadgePDF  = lipgloss.Color("#F97316") // Orange
	BadgeText = lipgloss.Color("#60A5FA") // Blue

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Group rows
	GroupLabel = lipgloss.NewStyle().
			Bold(true)

	GroupKey = lipgloss.NewStyle().
			Foreground(Muted)

	GroupSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	FileRow = lipgloss.NewStyle().
		Foreground(Muted).
		PaddingLeft(4)

	Expanded  = "▼ "
	Collapsed = "▶ "

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Badge renders a short format tag such as "pdf" in its format color
func Badge(ext string) string {
	color := Muted
	switch ext {
	case "pdf":
		color = BadgePDF
	case "txt":
		color = BadgeText
	}
	return lipgloss.NewStyle().Foreground(color).Render(ext)
}
