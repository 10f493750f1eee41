package cmd

import (
	"fmt"
	"strconv"

	"github.com/jfmoncada/plata/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List vehicles and SOAT expiry",
	RunE:  runVehiclesList,
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehiclesList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	vehicles, err := a.client.ListVehicles(cmd.Context())
	if err != nil {
		return err
	}

	if len(vehicles) == 0 {
		fmt.Println("No vehicles registered.")
		return nil
	}

	rows := make([][]string, 0, len(vehicles))
	expiring := 0
	for _, v := range vehicles {
		if v.SoatDaysRemaining <= 30 {
			expiring++
		}
		rows = append(rows, []string{
			v.Plate,
			fmt.Sprintf("%s %s %d", v.Brand, v.Line, v.ModelYear),
			cli.FormatDate(v.SoatExpiry),
			cli.FormatDaysRemaining(v.SoatDaysRemaining),
			v.InsuranceCompany,
			strconv.Itoa(v.ID),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Vehicles",
		Headers: []string{"Plate", "Vehicle", "SOAT Expiry", "Remaining", "Insurer", "ID"},
		Rows:    rows,
	}))

	if expiring > 0 {
		warn := lipgloss.NewStyle().Foreground(cli.ColorOrange)
		fmt.Printf("  %s\n\n", warn.Render(
			fmt.Sprintf("%d vehicle(s) with SOAT expiring within 30 days", expiring)))
	}
	return nil
}
