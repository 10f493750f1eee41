package tui

import (
	"strings"

	"github.com/jfmoncada/plata/internal/tui/components"
	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAlerts() string {
	t := theme.Active
	snap := a.deps.Alerts.Snapshot()

	if snap.Loading && len(snap.Items) == 0 {
		return "  " + a.spinner.View() + " Loading alerts..."
	}
	if snap.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return "  " + errStyle.Render(snap.Err) + "\n  Press r to retry."
	}
	if len(snap.Items) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "  " + dim.Render("No alerts.")
	}

	unreadStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	readStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for _, al := range snap.Items {
		marker := "  "
		style := readStyle
		if !al.IsRead {
			marker = lipgloss.NewStyle().Foreground(components.AlertColor(al.AlertType)).Render("● ")
			style = unreadStyle
		}
		b.WriteString("  ")
		b.WriteString(marker)
		b.WriteString(style.Render(al.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(dimStyle.Render("[m] mark all read"))
	return b.String()
}
