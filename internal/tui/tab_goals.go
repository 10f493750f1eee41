package tui

import (
	"fmt"
	"strings"

	"github.com/jfmoncada/plata/internal/cli"
	"github.com/jfmoncada/plata/internal/tui/components"
	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoals() string {
	t := theme.Active

	if a.goalsErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return "  " + errStyle.Render(a.goalsErr) + "\n  Press r to retry."
	}
	if len(a.goals) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "  " + dim.Render("No goals yet.")
	}

	labelW := 0
	for _, g := range a.goals {
		if len(g.Name) > labelW {
			labelW = len(g.Name)
		}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder
	for _, g := range a.goals {
		// Goal progress reuses the spent bar; a reached goal shows green.
		status := "warning"
		if g.ProgressPercentage >= 100 {
			status = "good"
		}
		b.WriteString("  ")
		b.WriteString(components.SpentBar(g.Name, g.ProgressPercentage, status, labelW, 30))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s of %s by %s",
			cli.FormatMoney(g.CurrentAmount, g.Currency),
			cli.FormatMoney(g.TargetAmount, g.Currency),
			cli.FormatDate(g.TargetDate))))
		b.WriteString("\n")
	}
	return b.String()
}
