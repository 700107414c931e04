package views

import (
	"github.com/charmbracelet/lipgloss"
)

// ColourScheme is the Catppuccin Mocha palette.
type ColourScheme struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Teal     string
	Blue     string
	Lavender string
	Text     string
	Subtext0 string
	Overlay1 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Teal:     "#94e2d5",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

func colour(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colour(Colours.Text)).
			Background(colour(Colours.Surface0)).
			Padding(0, 1)

	textStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Text))

	mutedStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Overlay1))

	fieldStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Text)).
			Padding(0, 2)

	activeLabelStyle = lipgloss.NewStyle().
				Foreground(colour(Colours.Blue)).
				Bold(true)

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Red)).
			Padding(0, 4)

	successBoxStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Green)).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colour(Colours.Green))

	errorBoxStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Red)).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colour(Colours.Red))

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colour(Colours.Surface1)).
			Padding(0, 1).
			Width(40)

	selectedRowStyle = lipgloss.NewStyle().
				Background(colour(Colours.Surface1)).
				Foreground(colour(Colours.Text)).
				Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Text)).
			Padding(0, 1)

	nameColumn  = lipgloss.NewStyle().Bold(true).Width(26)
	phoneColumn = lipgloss.NewStyle().Foreground(colour(Colours.Blue)).Width(22)
	emailColumn = lipgloss.NewStyle().Foreground(colour(Colours.Teal)).Width(30)
	localBadge  = lipgloss.NewStyle().Foreground(colour(Colours.Peach))

	buttonStyle = lipgloss.NewStyle().
			Background(colour(Colours.Green)).
			Foreground(colour(Colours.Base)).
			Padding(0, 2)

	disabledButtonStyle = buttonStyle.
				Background(colour(Colours.Overlay1))

	warningStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Red)).
			Padding(0, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Yellow))
)

// truncate shortens s to width runes, ending with "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
