package cmd

import (
	"fmt"
	"strconv"

	"github.com/jfmoncada/plata/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.ConfigPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (api.base_url, defaults.period, defaults.active_only, appearance.theme, tui.refresh_interval_sec)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configPathCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("config file: %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print(" (not created yet, showing defaults)")
	}
	fmt.Println()
	fmt.Println()
	fmt.Printf("  api.base_url              %s\n", config.BaseURL(cfg))
	fmt.Printf("  defaults.period           %s\n", cfg.DefaultPeriod())
	fmt.Printf("  defaults.active_only      %t\n", cfg.Defaults.ActiveOnly)
	fmt.Printf("  appearance.theme          %s\n", cfg.Appearance.Theme)
	fmt.Printf("  tui.refresh_interval_sec  %d\n", cfg.TUI.RefreshIntervalSec)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "defaults.period":
		if value != "weekly" && value != "monthly" && value != "yearly" {
			return fmt.Errorf("invalid period %q", value)
		}
		cfg.Defaults.Period = value
	case "defaults.active_only":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool %q", value)
		}
		cfg.Defaults.ActiveOnly = b
	case "appearance.theme":
		cfg.Appearance.Theme = value
	case "tui.refresh_interval_sec":
		n, err := strconv.Atoi(value)
		if err != nil || n < 5 {
			return fmt.Errorf("refresh interval must be an integer >= 5")
		}
		cfg.TUI.RefreshIntervalSec = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
