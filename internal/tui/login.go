package tui

import (
	"context"

	"github.com/jfmoncada/plata/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// loginValues holds the form inputs behind a stable pointer.
type loginValues struct {
	username string
	password string
}

func (a *App) newLoginForm() *huh.Form {
	a.loginVals = &loginValues{}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&a.loginVals.username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&a.loginVals.password),
	))
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "ctrl+c" || key.String() == "esc") {
		return a, tea.Quit
	}
	if a.loggingIn {
		return a, nil
	}

	form, cmd := a.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.loginForm = f
	}

	if a.loginForm.State == huh.StateCompleted {
		a.loggingIn = true
		username, password := a.loginVals.username, a.loginVals.password
		sess := a.deps.Session
		return a, func() tea.Msg {
			return loginDoneMsg{err: sess.Login(context.Background(), username, password)}
		}
	}

	return a, cmd
}

func (a App) renderLogin() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	out := "\n " + titleStyle.Render("plata — sign in") + "\n\n"
	if a.loggingIn {
		return out + "  " + a.spinner.View() + " Signing in..."
	}
	if a.loginErr != "" {
		out += "  " + errStyle.Render(a.loginErr) + "\n\n"
	}
	out += a.loginForm.View() + "\n"
	out += "  " + dimStyle.Render("esc to quit")
	return out
}
