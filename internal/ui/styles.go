package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Deep sea background, sand text, lagoon accent.
var (
	ColorBase    = lipgloss.Color("#14202B")
	ColorSurface = lipgloss.Color("#1F3140")
	ColorMuted   = lipgloss.Color("#6F8596")
	ColorText    = lipgloss.Color("#E6DCC8")
	ColorAccent  = lipgloss.Color("#4FB3BF")
	ColorGreen   = lipgloss.Color("#8CCB8A")
	ColorRed     = lipgloss.Color("#E5787A")
	ColorYellow  = lipgloss.Color("#F2C46D")
)

// bordered is the frame shared by form fields and panels.
func bordered(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

// Chrome: header, breadcrumb, footer.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorSurface)

	BreadcrumbStyle       = lipgloss.NewStyle().Foreground(ColorMuted)
	BreadcrumbActiveStyle = lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorSurface)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Tables.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorSurface).
				Padding(0, 1)

	TableSeparatorStyle = lipgloss.NewStyle().Foreground(ColorSurface)

	NormalRowStyle   = lipgloss.NewStyle().Foreground(ColorText)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(ColorBase).Background(ColorAccent)
	// InactiveRowStyle marks soft-deleted records.
	InactiveRowStyle = lipgloss.NewStyle().Foreground(ColorMuted).Strikethrough(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)
)

// Forms.
var (
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorAccent)
	BorderStyle       = bordered(ColorSurface)
	ActiveBorderStyle = bordered(ColorAccent)
	PanelStyle        = bordered(ColorMuted).Padding(1, 2)
	PreviewStyle      = bordered(ColorYellow).Foreground(ColorText)
)

// Banners.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed).Padding(0, 1)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen).Padding(0, 1)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorYellow).
			Bold(true).
			Padding(0, 1)
)
