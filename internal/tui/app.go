package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jobdeck/jobdeck/internal/model"
)

// Deps are the collaborators every screen shares.
type Deps struct {
	Auth    model.AuthService
	Jobs    model.JobService
	Session model.SessionStore
	Logger  *slog.Logger
}

type route int

const (
	// routeInitializing is held while the stored session is being read, so
	// the first painted frame is never the wrong screen.
	routeInitializing route = iota
	routeLogin
	routeRegister
	routeDashboard
)

// sessionLoadedMsg carries the stored session read at startup.
type sessionLoadedMsg struct {
	sess model.Session
	err  error
}

// authSuccessMsg is emitted by the login/register screens after the server
// accepted the credentials. The app persists the session and routes to the
// dashboard.
type authSuccessMsg struct {
	sess model.Session
}

// sessionExpiredMsg is emitted by the dashboard when any protected call came
// back 401. The app clears the stored session and routes to login.
type sessionExpiredMsg struct{}

// logoutMsg is emitted by the dashboard on an explicit logout.
type logoutMsg struct{}

// showRegisterMsg and showLoginMsg switch between the unauthenticated screens.
type showRegisterMsg struct{}
type showLoginMsg struct{}

// App is the top-level gate: it decides which screen is live based purely on
// session state. Protected screens are unreachable without a token, and the
// auth screens are unreachable with one.
type App struct {
	deps Deps

	route    route
	login    loginModel
	register registerModel
	dash     dashboardModel

	width  int
	height int
}

// NewApp builds the gate in its initializing state.
func NewApp(deps Deps) App {
	return App{
		deps:     deps,
		route:    routeInitializing,
		login:    newLogin(deps),
		register: newRegister(deps),
	}
}

func (a App) Init() tea.Cmd {
	return a.loadSessionCmd()
}

func (a App) loadSessionCmd() tea.Cmd {
	store := a.deps.Session
	return func() tea.Msg {
		sess, err := store.Load()
		return sessionLoadedMsg{sess: sess, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.setSize(msg.Width, msg.Height)
		a.register.setSize(msg.Width, msg.Height)
		if a.route == routeDashboard {
			var cmd tea.Cmd
			a.dash, cmd = a.dash.update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case sessionLoadedMsg:
		if msg.err != nil {
			a.deps.Logger.Error("failed to read stored session", "error", msg.err)
		}
		if msg.sess.Active() {
			return a.enterDashboard(msg.sess)
		}
		a.route = routeLogin
		return a, a.login.focusCmd()

	case authSuccessMsg:
		if err := a.deps.Session.Save(msg.sess); err != nil {
			a.deps.Logger.Error("failed to persist session", "error", err)
		}
		return a.enterDashboard(msg.sess)

	case sessionExpiredMsg:
		a.clearSession()
		a.login = newLogin(a.deps)
		a.login.notice = "Session expired. Please log in again."
		a.login.setSize(a.width, a.height)
		a.route = routeLogin
		return a, a.login.focusCmd()

	case logoutMsg:
		a.clearSession()
		a.login = newLogin(a.deps)
		a.login.setSize(a.width, a.height)
		a.route = routeLogin
		return a, a.login.focusCmd()

	case showRegisterMsg:
		if a.route == routeLogin {
			a.register = newRegister(a.deps)
			a.register.setSize(a.width, a.height)
			a.route = routeRegister
			return a, a.register.focusCmd()
		}
		return a, nil

	case showLoginMsg:
		if a.route == routeRegister {
			a.login = newLogin(a.deps)
			a.login.setSize(a.width, a.height)
			a.route = routeLogin
			return a, a.login.focusCmd()
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.route {
	case routeLogin:
		a.login, cmd = a.login.update(msg)
	case routeRegister:
		a.register, cmd = a.register.update(msg)
	case routeDashboard:
		a.dash, cmd = a.dash.update(msg)
	}
	return a, cmd
}

// enterDashboard routes to the job list. The fresh dashboard always starts
// with an empty list and an immediate refresh, so no data from a previous
// session is ever shown.
func (a App) enterDashboard(sess model.Session) (tea.Model, tea.Cmd) {
	a.dash = newDashboard(a.deps, sess.Email)
	a.dash.setSize(a.width, a.height)
	a.route = routeDashboard
	return a, a.dash.init()
}

func (a *App) clearSession() {
	if err := a.deps.Session.Clear(); err != nil {
		a.deps.Logger.Error("failed to clear session", "error", err)
	}
}

func (a App) View() string {
	switch a.route {
	case routeInitializing:
		// Blank until the session read resolves; avoids flashing the login
		// form at an already-authenticated user (or vice versa).
		return ""
	case routeLogin:
		return a.login.view()
	case routeRegister:
		return a.register.view()
	case routeDashboard:
		return a.dash.view()
	}
	return ""
}

// centered places content in the middle of the terminal when the size is
// known, and returns it as-is otherwise.
func centered(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Run launches the full-screen client and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(NewApp(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
