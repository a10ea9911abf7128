package importer

import "github.com/charmbracelet/lipgloss"

// Colors used in the import wizard.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Styles holds the styles for the import wizard.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Step     lipgloss.Style
	Row      lipgloss.Style
	RowError lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Step: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1),
		Row: lipgloss.NewStyle().
			MaxWidth(100),
		RowError: lipgloss.NewStyle().
			Foreground(ColorError).
			MaxWidth(100),
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
	}
}
