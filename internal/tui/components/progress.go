package components

import (
	"fmt"

	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StatusColor maps a server-computed budget status to its theme color.
// The client never derives status from the numbers.
func StatusColor(status string) lipgloss.Color {
	t := theme.Active
	switch status {
	case "exceeded":
		return t.Red
	case "warning":
		return t.Orange
	default:
		return t.Green
	}
}

// AlertColor maps an alert type to its theme color. SOAT expiry is an
// informational deadline, not a budget status, so it gets its own color.
func AlertColor(alertType string) lipgloss.Color {
	t := theme.Active
	switch alertType {
	case "exceeded":
		return t.Red
	case "soat_expiry":
		return t.Blue
	default:
		return t.Orange
	}
}

// SpentBar renders a labeled spent-percentage bar colored by status.
// pct is on the 0-100 scale as reported by the server.
func SpentBar(label string, pct float64, status string, labelW, barWidth int) string {
	t := theme.Active

	shown := pct
	if shown < 0 {
		shown = 0
	}
	if shown > 100 {
		shown = 100
	}

	bar := progress.New(
		progress.WithSolidFill(string(StatusColor(status))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(StatusColor(status)).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " + bar.ViewAs(shown/100) +
		" " + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}
