package cmd

import (
	"fmt"

	"github.com/jfmoncada/plata/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	app := tui.NewApp(tui.Deps{
		Session:  a.sess,
		Budgets:  a.budgets,
		Alerts:   a.alerts,
		Client:   a.client,
		Config:   a.cfg,
		Defaults: a.defaultBudgetFilters(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
