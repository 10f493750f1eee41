package cmd

import (
	"fmt"
	"strconv"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagBudgetCategory int
	flagBudgetAmount   string
	flagBudgetPeriod   string
	flagBudgetCurrency string
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "List and manage budgets",
	RunE:  runBudgetsList,
}

var budgetsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one budget with its spend projection",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsShow,
}

var budgetsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a budget",
	RunE:  runBudgetsCreate,
}

var budgetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a budget's amount or period",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsUpdate,
}

var budgetsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsDelete,
}

var budgetsToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a budget active/inactive",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsToggle,
}

var budgetsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the monthly spending summary",
	RunE:  runBudgetsSummary,
}

var budgetsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories without an active budget",
	RunE:  runBudgetsCategories,
}

func init() {
	budgetsCreateCmd.Flags().IntVar(&flagBudgetCategory, "category", 0, "Category ID")
	budgetsCreateCmd.Flags().StringVar(&flagBudgetAmount, "amount", "", "Budget amount, e.g. 500000")
	budgetsCreateCmd.Flags().StringVar(&flagBudgetPeriod, "budget-period", "monthly", "weekly, monthly, or yearly")
	budgetsCreateCmd.Flags().StringVar(&flagBudgetCurrency, "currency", "COP", "Currency code")
	_ = budgetsCreateCmd.MarkFlagRequired("category")
	_ = budgetsCreateCmd.MarkFlagRequired("amount")

	budgetsUpdateCmd.Flags().StringVar(&flagBudgetAmount, "amount", "", "New amount")
	budgetsUpdateCmd.Flags().StringVar(&flagBudgetPeriod, "budget-period", "", "New period")

	budgetsCmd.AddCommand(budgetsShowCmd, budgetsCreateCmd, budgetsUpdateCmd,
		budgetsDeleteCmd, budgetsToggleCmd, budgetsSummaryCmd, budgetsCategoriesCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func runBudgetsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	a.budgets.Refresh(cmd.Context(), a.defaultBudgetFilters())
	snap := a.budgets.Snapshot()
	if snap.Err != "" {
		return fmt.Errorf("%s", snap.Err)
	}

	if len(snap.Items) == 0 {
		fmt.Println("No budgets. Create one with `plata budgets create`.")
		return nil
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, b := range snap.Items {
		active := "yes"
		if !b.IsActive {
			active = "no"
		}
		rows = append(rows, []string{
			b.CategoryName,
			cli.FormatMoney(b.Amount, b.Currency),
			cli.FormatMoney(b.SpentAmount, b.Currency),
			cli.FormatPercent(b.SpentPercentage),
			cli.FormatStatus(b.Status),
			active,
			strconv.Itoa(b.ID),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Category", "Budget", "Spent", "Used", "Status", "Active", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runBudgetsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	detail, err := a.budgets.Detail(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s (%s)\n", detail.CategoryName, detail.Period)
	fmt.Printf("  Budget:  %s\n", cli.FormatMoney(detail.Amount, detail.Currency))
	fmt.Printf("  Spent:   %s (%s)  %s\n",
		cli.FormatMoney(detail.SpentAmount, detail.Currency),
		cli.FormatPercent(detail.SpentPercentage),
		cli.RenderSpentBar(detail.SpentPercentage, detail.Status, 20))
	fmt.Printf("  Window:  %s to %s\n", cli.FormatDate(detail.StartDate), cli.FormatDate(detail.EndDate))

	if p := detail.Projection; p != nil {
		fmt.Println()
		fmt.Printf("  Projected spend:  %s (%s)\n",
			cli.FormatMoney(p.ProjectedSpend, detail.Currency),
			cli.FormatPercent(p.ProjectedPercentage))
		fmt.Printf("  Daily average:    %s\n", cli.FormatMoney(p.DailyAverage, detail.Currency))
		fmt.Printf("  Days remaining:   %d\n", p.DaysRemaining)
		if p.WillExceed {
			fmt.Println("  On track to exceed this budget.")
		}
	}
	fmt.Println()
	return nil
}

func runBudgetsCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	payload := api.BudgetPayload{
		Category: &flagBudgetCategory,
		Amount:   &flagBudgetAmount,
		Period:   &flagBudgetPeriod,
		Currency: &flagBudgetCurrency,
	}

	created, err := a.budgets.Create(cmd.Context(), payload)
	if err != nil {
		return err
	}

	fmt.Printf("Created budget #%d: %s %s\n", created.ID,
		cli.FormatMoney(created.Amount, created.Currency), created.Period)
	return nil
}

func runBudgetsUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var payload api.BudgetPayload
	if flagBudgetAmount != "" {
		payload.Amount = &flagBudgetAmount
	}
	if flagBudgetPeriod != "" {
		payload.Period = &flagBudgetPeriod
	}
	if payload.Amount == nil && payload.Period == nil {
		return fmt.Errorf("nothing to update: pass --amount or --budget-period")
	}

	if err := a.budgets.Update(cmd.Context(), id, payload); err != nil {
		return err
	}

	fmt.Printf("Updated budget #%d\n", id)
	return nil
}

func runBudgetsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.budgets.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted budget #%d\n", id)
	return nil
}

func runBudgetsToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	result, err := a.budgets.ToggleActive(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	return nil
}

func runBudgetsSummary(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	summary, err := a.budgets.Summary(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY SUMMARY"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Budgeted", cli.FormatMoney(summary.TotalBudgeted, summary.Currency)},
			{"Spent", cli.FormatMoney(summary.TotalSpent, summary.Currency)},
			{"Overall", cli.FormatPercent(summary.OverallPercent)},
			{"Budgets", strconv.Itoa(summary.BudgetCount)},
			{"In warning", strconv.Itoa(summary.WarningCount)},
			{"Exceeded", strconv.Itoa(summary.ExceededCount)},
		},
	}))
	return nil
}

func runBudgetsCategories(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	categories, err := a.budgets.CategoriesWithoutBudget(cmd.Context())
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("Every category has a budget.")
		return nil
	}

	fmt.Println("Categories without a budget:")
	for _, c := range categories {
		fmt.Printf("  %3d  %s\n", c.ID, c.Name)
	}
	return nil
}
