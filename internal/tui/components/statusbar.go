package components

import (
	"fmt"

	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with the signed-in user
// and the unread alert count.
func RenderStatusBar(width int, username string, unread int) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [r]efresh  [q]uit"
	right := ""
	if username != "" {
		right = username + " "
	}
	if unread > 0 {
		alertStyle := lipgloss.NewStyle().Foreground(t.Orange)
		right = alertStyle.Render(fmt.Sprintf("%d unread ", unread)) + right
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	var bar = left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
