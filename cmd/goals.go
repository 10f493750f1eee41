package cmd

import (
	"fmt"
	"strconv"

	"github.com/jfmoncada/plata/internal/cli"

	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings goals",
	RunE:  runGoalsList,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	goals, err := a.client.ListGoals(cmd.Context())
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet.")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.Name,
			cli.FormatMoney(g.CurrentAmount, g.Currency),
			cli.FormatMoney(g.TargetAmount, g.Currency),
			cli.FormatPercent(g.ProgressPercentage),
			cli.FormatDate(g.TargetDate),
			strconv.Itoa(g.ID),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Goals",
		Headers: []string{"Goal", "Saved", "Target", "Progress", "By", "ID"},
		Rows:    rows,
	}))
	return nil
}
