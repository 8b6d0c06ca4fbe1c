// internal/tui/app.go
//
// This is the main TUI for jobdesk. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
	"github.com/arshanss504/job-contractor/internal/identity"
	"github.com/arshanss504/job-contractor/internal/logbook"
)

// appState represents which "screen" we're on
type appState int

const (
	stateHydrating  appState = iota // Restoring the persisted session
	stateLogin                      // Sign-in form
	stateRegister                   // Account creation form
	stateAgent                      // Agent dashboard
	stateContractor                 // Contractor dashboard
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7B801"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
)

// hydratedMsg resolves the single suspension point before routing: the
// session store has been consulted and the identity manager knows whether a
// user is logged in.
type hydratedMsg struct {
	err error
}

// sessionExpiredMsg is emitted by any view whose request came back 401. The
// app clears the session and routes to the login screen.
type sessionExpiredMsg struct{}

// loggedInMsg routes to the dashboard matching the user's role.
type loggedInMsg struct {
	user domain.User
}

// loggedOutMsg routes back to the login screen.
type loggedOutMsg struct{}

// App is the main application model. In bubbletea, this holds ALL the state.
type App struct {
	state    appState
	client   *api.Client
	identity *identity.Manager
	logbook  *logbook.Logbook

	loginView      *loginView
	registerView   *registerView
	agentView      *agentView
	contractorView *contractorView

	statusMsg string
	width     int
	height    int
}

// NewApp creates the application model. The identity manager is hydrated
// asynchronously by Init; until then every protected view is gated behind
// the loading screen.
func NewApp(client *api.Client, ident *identity.Manager, lb *logbook.Logbook) *App {
	return &App{
		state:    stateHydrating,
		client:   client,
		identity: ident,
		logbook:  lb,
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return hydratedMsg{err: a.identity.Hydrate()}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case hydratedMsg:
		if msg.err != nil {
			a.logbook.Warn("session hydration failed", zap.Error(msg.err))
		}
		if user := a.identity.CurrentUser(); user != nil {
			return a.routeToDashboard(*user)
		}
		a.state = stateLogin
		a.loginView = newLoginView(a)
		return a, nil

	case loggedInMsg:
		return a.routeToDashboard(msg.user)

	case loggedOutMsg:
		a.identity.Logout()
		return a.routeToLogin("Signed out")

	case sessionExpiredMsg:
		a.identity.Invalidate()
		return a.routeToLogin("Session expired. Sign in again.")

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+o":
			if a.state == stateAgent || a.state == stateContractor {
				return a, func() tea.Msg { return loggedOutMsg{} }
			}
		}
	}

	switch a.state {
	case stateLogin:
		if a.loginView != nil {
			return a, a.loginView.Update(msg)
		}
	case stateRegister:
		if a.registerView != nil {
			return a, a.registerView.Update(msg)
		}
	case stateAgent:
		if a.agentView != nil {
			return a, a.agentView.Update(msg)
		}
	case stateContractor:
		if a.contractorView != nil {
			return a, a.contractorView.Update(msg)
		}
	}
	return a, nil
}

// routeToDashboard branches by role once a session is known.
func (a *App) routeToDashboard(user domain.User) (tea.Model, tea.Cmd) {
	a.loginView = nil
	a.registerView = nil
	a.statusMsg = ""
	if user.Role == domain.RoleAgent {
		a.state = stateAgent
		a.agentView = newAgentView(a, user)
		return a, a.agentView.Init()
	}
	a.state = stateContractor
	a.contractorView = newContractorView(a, user)
	return a, a.contractorView.Init()
}

func (a *App) routeToLogin(status string) (tea.Model, tea.Cmd) {
	a.state = stateLogin
	a.agentView = nil
	a.contractorView = nil
	a.registerView = nil
	a.loginView = newLoginView(a)
	a.statusMsg = status
	return a, nil
}

func (a *App) showRegister() {
	a.state = stateRegister
	a.loginView = nil
	a.registerView = newRegisterView(a)
	a.statusMsg = ""
}

func (a *App) showLogin() {
	a.state = stateLogin
	a.registerView = nil
	a.loginView = newLoginView(a)
	a.statusMsg = ""
}

func (a *App) setStatus(status string) {
	a.statusMsg = status
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.state {
	case stateHydrating:
		content = mutedStyle.Render("Loading session...")
	case stateLogin:
		if a.loginView != nil {
			content = a.loginView.View()
		}
	case stateRegister:
		if a.registerView != nil {
			content = a.registerView.View()
		}
	case stateAgent:
		if a.agentView != nil {
			content = a.agentView.View()
		}
	case stateContractor:
		if a.contractorView != nil {
			content = a.contractorView.View()
		}
	}

	header := headerStyle.Render("⬡ JOBDESK")
	body := boxStyle.Width(max(40, width-2)).Render(content)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		sections = append(sections, footerStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := labelStyle.Render("LOG")
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(head + "\n" + body)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
