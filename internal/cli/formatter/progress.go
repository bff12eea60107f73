package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders n out of total as a bar like [████░░░░] 2/5.
func RenderShare(n, total, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if total > 0 {
		filled = min(width, n*width/total)
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), n, total)
}
