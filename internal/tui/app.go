// Package tui provides the interactive Bubble Tea dashboard for plata.
// All domain state flows through the containers; the dashboard only
// renders snapshots and invokes mutations.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/jfmoncada/plata/internal/api"
	"github.com/jfmoncada/plata/internal/config"
	"github.com/jfmoncada/plata/internal/session"
	"github.com/jfmoncada/plata/internal/state"
	"github.com/jfmoncada/plata/internal/tui/components"
	"github.com/jfmoncada/plata/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Deps is everything the dashboard needs from the composition root.
type Deps struct {
	Session  *session.Session
	Budgets  *state.BudgetContainer
	Alerts   *state.AlertContainer
	Client   *api.Client
	Config   config.Config
	Defaults api.BudgetFilters
}

// Messages from background commands.
type (
	budgetsRefreshedMsg struct{}
	alertsRefreshedMsg  struct{}
	goalsLoadedMsg      struct {
		goals []api.Goal
		err   error
	}
	loginDoneMsg struct{ err error }
	tickMsg      time.Time
)

// App is the root Bubble Tea model.
type App struct {
	deps Deps

	width  int
	height int

	activeTab int
	spinner   spinner.Model

	// Login form shown while unauthenticated. Values live behind a
	// pointer so the huh inputs stay bound across model copies.
	loginForm *huh.Form
	loginVals *loginValues
	loginErr  string
	loggingIn bool

	// Goals are fetched passthrough, not container-cached.
	goals    []api.Goal
	goalsErr string

	refreshEvery time.Duration
}

// NewApp creates the dashboard model.
func NewApp(deps Deps) App {
	theme.SetActive(deps.Config.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	interval := deps.Config.TUI.RefreshIntervalSec
	if interval < 5 {
		interval = 60
	}

	a := App{
		deps:         deps,
		spinner:      sp,
		refreshEvery: time.Duration(interval) * time.Second,
	}
	if !deps.Session.Authenticated() {
		a.loginForm = a.newLoginForm()
	}
	return a
}

// Init starts the spinner, the refresh tick, and the initial data load.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, a.tick()}
	if a.deps.Session.Authenticated() {
		cmds = append(cmds, a.refreshAll()...)
	} else {
		cmds = append(cmds, a.loginForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.loginForm != nil {
			return a.updateLogin(msg)
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tickMsg:
		// Recheck picks up credentials cleared by another process;
		// while authenticated the containers also refresh.
		a.deps.Session.Recheck()
		if !a.deps.Session.Authenticated() {
			if a.loginForm == nil {
				a.loginForm = a.newLoginForm()
				return a, tea.Batch(a.tick(), a.loginForm.Init())
			}
			return a, a.tick()
		}
		if a.loginForm != nil {
			// Credentials appeared from another process.
			a.loginForm = nil
			a.loginErr = ""
			a.loggingIn = false
		}
		return a, tea.Batch(append(a.refreshAll(), a.tick())...)

	case budgetsRefreshedMsg, alertsRefreshedMsg:
		return a, nil

	case goalsLoadedMsg:
		if errors.Is(msg.err, api.ErrUnauthorized) {
			// Token rejected server-side, drop the session.
			a.deps.Session.ForceLogout()
			a.goals = nil
			a.goalsErr = ""
			a.loginForm = a.newLoginForm()
			return a, a.loginForm.Init()
		}
		a.goals = msg.goals
		a.goalsErr = ""
		if msg.err != nil {
			a.goalsErr = msg.err.Error()
		}
		return a, nil

	case loginDoneMsg:
		a.loggingIn = false
		if msg.err != nil {
			a.loginErr = msg.err.Error()
			a.loginForm = a.newLoginForm()
			return a, a.loginForm.Init()
		}
		a.loginForm = nil
		a.loginErr = ""
		return a, tea.Batch(a.refreshAll()...)
	}

	if a.loginForm != nil {
		return a.updateLogin(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "r":
		return a, tea.Batch(a.refreshAll()...)
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil
	case "m":
		if a.activeTab == tabAlerts {
			return a, a.markAllRead()
		}
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

// View renders the dashboard.
func (a App) View() string {
	if a.deps.Session.Loading() {
		return "\n  " + a.spinner.View() + " Checking session..."
	}
	if a.loginForm != nil {
		return a.renderLogin()
	}

	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	var body string
	switch a.activeTab {
	case tabBudgets:
		body = a.renderBudgets()
	case tabAlerts:
		body = a.renderAlerts()
	case tabGoals:
		body = a.renderGoals()
	}

	user := ""
	if u := a.deps.Session.User(); u != nil {
		user = u.Username
	}

	return "\n " + titleStyle.Render("plata") + "\n\n" +
		components.RenderTabBar(a.activeTab) + "\n\n" +
		body + "\n" +
		components.RenderStatusBar(a.width, user, a.deps.Alerts.UnreadCount())
}

// Tab indices, matching components.Tabs order.
const (
	tabBudgets = iota
	tabAlerts
	tabGoals
)

func (a App) tick() tea.Cmd {
	return tea.Tick(a.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshAll refreshes both containers and the goals list.
func (a App) refreshAll() []tea.Cmd {
	deps := a.deps
	return []tea.Cmd{
		func() tea.Msg {
			deps.Budgets.Refresh(context.Background(), deps.Defaults)
			return budgetsRefreshedMsg{}
		},
		func() tea.Msg {
			deps.Alerts.Refresh(context.Background(), api.AlertFilters{})
			return alertsRefreshedMsg{}
		},
		func() tea.Msg {
			goals, err := deps.Client.ListGoals(context.Background())
			return goalsLoadedMsg{goals: goals, err: err}
		},
	}
}

func (a App) markAllRead() tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		_ = deps.Alerts.MarkAllRead(context.Background())
		return alertsRefreshedMsg{}
	}
}
