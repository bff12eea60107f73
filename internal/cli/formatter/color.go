package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// swatchColors maps event swatches onto terminal colors.
var swatchColors = map[calendar.Swatch]lipgloss.Color{
	calendar.SwatchBlue:    lipgloss.Color("#83a598"),
	calendar.SwatchGreen:   lipgloss.Color("#8ec07c"),
	calendar.SwatchPurple:  lipgloss.Color("#d3869b"),
	calendar.SwatchAmber:   lipgloss.Color("#fabd2f"),
	calendar.SwatchRose:    lipgloss.Color("#fb4934"),
	calendar.SwatchCyan:    lipgloss.Color("#89b4fa"),
	calendar.SwatchIndigo:  lipgloss.Color("#b4befe"),
	calendar.SwatchEmerald: lipgloss.Color("#b8bb26"),
}

// SwatchColor returns the terminal color for s, falling back to the
// foreground color for unknown swatches.
func SwatchColor(s calendar.Swatch) lipgloss.Color {
	if c, ok := swatchColors[s]; ok {
		return c
	}
	return ColorFg
}

// SwatchStyle renders text in the swatch color.
func SwatchStyle(s calendar.Swatch) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SwatchColor(s))
}

// EventBlock is the filled block style used for events in the week grid.
func EventBlock(s calendar.Swatch) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorBg).Background(SwatchColor(s))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// ObjectiveStyle colors objective n (1-based) the way its events are colored.
func ObjectiveStyle(n int) lipgloss.Style {
	if n < 1 || n > len(calendar.ObjectiveSwatches) {
		return StyleDim
	}
	return SwatchStyle(calendar.ObjectiveSwatches[n-1]).Bold(true)
}
