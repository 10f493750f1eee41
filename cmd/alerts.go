package cmd

import (
	"fmt"
	"strconv"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagAlertsUnread bool
	flagAlertsType   string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List and manage budget alerts",
	RunE:  runAlertsList,
}

var alertsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark an alert as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsRead,
}

var alertsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every alert as read",
	RunE:  runAlertsReadAll,
}

var alertsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an alert",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsDelete,
}

func init() {
	alertsCmd.Flags().BoolVar(&flagAlertsUnread, "unread", false, "Only unread alerts")
	alertsCmd.Flags().StringVar(&flagAlertsType, "type", "", "Filter by type (warning, exceeded, soat_expiry)")
	alertsCmd.AddCommand(alertsReadCmd, alertsReadAllCmd, alertsDeleteCmd)
	rootCmd.AddCommand(alertsCmd)
}

func runAlertsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	a.alerts.Refresh(cmd.Context(), api.AlertFilters{
		Unread: flagAlertsUnread,
		Type:   flagAlertsType,
	})
	snap := a.alerts.Snapshot()
	if snap.Err != "" {
		return fmt.Errorf("%s", snap.Err)
	}

	if len(snap.Items) == 0 {
		fmt.Println("No alerts.")
		return nil
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, al := range snap.Items {
		read := ""
		if !al.IsRead {
			read = "●"
		}
		rows = append(rows, []string{
			read,
			al.AlertType,
			al.Message,
			strconv.Itoa(al.ID),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Alerts (%d unread)", a.alerts.UnreadCount()),
		Headers: []string{"", "Type", "Message", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runAlertsRead(cmd *cobra.Command, args []string) error {
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

	if err := a.alerts.MarkRead(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Alert #%d marked read\n", id)
	return nil
}

func runAlertsReadAll(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if err := requireAuth(a); err != nil {
		return err
	}

	if err := a.alerts.MarkAllRead(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("All alerts marked read.")
	return nil
}

func runAlertsDelete(cmd *cobra.Command, args []string) error {
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

	if err := a.alerts.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted alert #%d\n", id)
	return nil
}
