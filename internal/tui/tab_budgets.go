package tui

import (
	"fmt"
	"strings"

	"github.com/jfmoncada/plata/internal/cli"
	"github.com/jfmoncada/plata/internal/tui/components"
	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgets() string {
	t := theme.Active
	snap := a.deps.Budgets.Snapshot()

	if snap.Loading && len(snap.Items) == 0 {
		return "  " + a.spinner.View() + " Loading budgets..."
	}
	if snap.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return "  " + errStyle.Render(snap.Err) + "\n  Press r to retry."
	}
	if len(snap.Items) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "  " + dim.Render("No budgets for this period.")
	}

	labelW := 0
	for _, b := range snap.Items {
		if len(b.CategoryName) > labelW {
			labelW = len(b.CategoryName)
		}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder
	for _, item := range snap.Items {
		b.WriteString("  ")
		b.WriteString(components.SpentBar(item.CategoryName, item.SpentPercentage, item.Status, labelW, 30))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s of %s",
			cli.FormatMoney(item.SpentAmount, item.Currency),
			cli.FormatMoney(item.Amount, item.Currency))))
		if !item.IsActive {
			b.WriteString(mutedStyle.Render("  (inactive)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
