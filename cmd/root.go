package cmd

import (
	"log/slog"
	"os"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/config"
	"github.com/jfmoncada/plata/internal/logging"
	"github.com/jfmoncada/plata/internal/session"
	"github.com/jfmoncada/plata/internal/state"

	"github.com/spf13/cobra"
)

var (
	flagPeriod     string
	flagActiveOnly bool
	flagAPIURL     string
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "plata",
	Short: "Personal finance terminal client",
	Long:  "Track your budgets, alerts, goals, and SOAT expiry from the terminal.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagQuiet {
			logging.SetupWithLevel(slog.LevelError)
		}
	},
	RunE: runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	logging.Setup()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPeriod, "period", "p", "", "Budget period filter (weekly, monthly, yearly)")
	rootCmd.PersistentFlags().BoolVar(&flagActiveOnly, "active-only", false, "Only active budgets")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config and PLATA_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// app wires the composition root: config, credential store, API client,
// session, and the two domain containers.
type app struct {
	cfg     config.Config
	store   *session.Store
	sess    *session.Session
	client  *api.Client
	budgets *state.BudgetContainer
	alerts  *state.AlertContainer
}

// newApp builds the object graph and settles the session from persisted
// credentials. Containers are constructed after CheckAuth so one-shot
// commands control their own refreshes.
func newApp() (*app, error) {
	cfg, _ := config.Load()

	store, err := session.OpenStore(session.DefaultStorePath())
	if err != nil {
		return nil, err
	}

	baseURL := config.BaseURL(cfg)
	if flagAPIURL != "" {
		baseURL = flagAPIURL
	}

	client := api.NewClient(baseURL, nil)
	sess := session.New(store, client)
	client.SetTokenFunc(sess.TokenFunc())

	sess.CheckAuth()

	a := &app{
		cfg:    cfg,
		store:  store,
		sess:   sess,
		client: client,
	}
	a.budgets = state.NewBudgetContainer(client, sess, a.defaultBudgetFilters())
	a.alerts = state.NewAlertContainer(client, sess, api.AlertFilters{})
	return a, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// defaultBudgetFilters resolves flags over configured defaults.
func (a *app) defaultBudgetFilters() api.BudgetFilters {
	filters := api.BudgetFilters{
		ActiveOnly: a.cfg.Defaults.ActiveOnly,
		Period:     a.cfg.DefaultPeriod(),
	}
	if flagPeriod != "" {
		filters.Period = flagPeriod
	}
	if flagActiveOnly {
		filters.ActiveOnly = true
	}
	return filters
}
