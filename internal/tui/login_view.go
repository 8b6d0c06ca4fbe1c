package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/domain"
)

type loginResultMsg struct {
	user domain.User
	err  error
}

// loginView is the sign-in form: user id + password.
type loginView struct {
	app    *App
	inputs []textinput.Model
	focus  int
	busy   bool
	errMsg string
}

func newLoginView(app *App) *loginView {
	userID := textinput.New()
	userID.Placeholder = "User ID"
	userID.CharLimit = 12
	userID.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	return &loginView{
		app:    app,
		inputs: []textinput.Model{userID, password},
	}
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Login failed. Check your user ID and password."
			v.app.logbook.Warn("login rejected", zap.Error(msg.err))
			return nil
		}
		return func() tea.Msg { return loggedInMsg{user: msg.user} }

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus((v.focus + 1) % len(v.inputs))
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + len(v.inputs) - 1) % len(v.inputs))
			return nil
		case "ctrl+r":
			v.app.showRegister()
			return nil
		case "enter":
			return v.submit()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *loginView) setFocus(idx int) {
	v.inputs[v.focus].Blur()
	v.focus = idx
	v.inputs[v.focus].Focus()
}

func (v *loginView) submit() tea.Cmd {
	userID, err := strconv.ParseInt(strings.TrimSpace(v.inputs[0].Value()), 10, 64)
	if err != nil || userID <= 0 {
		v.errMsg = "User ID must be a positive number."
		return nil
	}
	password := v.inputs[1].Value()
	if password == "" {
		v.errMsg = "Password is required."
		return nil
	}
	v.busy = true
	v.errMsg = ""
	ident := v.app.identity
	return func() tea.Msg {
		user, err := ident.Login(context.Background(), userID, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Sign In"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Enter your user ID to continue"))
	b.WriteString("\n\n")
	for i, input := range v.inputs {
		b.WriteString(input.View())
		if i < len(v.inputs)-1 {
			b.WriteString("\n")
		}
	}
	if v.busy {
		b.WriteString("\n\n" + mutedStyle.Render("Signing in..."))
	}
	if v.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(v.errMsg))
	}
	b.WriteString("\n\n" + mutedStyle.Render("Enter → sign in    Ctrl+R → register    Ctrl+C → quit"))
	return b.String()
}

type registerResultMsg struct {
	user domain.User
	err  error
}

// registerView collects the signup fields. Skills and education only matter
// for contractors but the server tolerates them either way.
type registerView struct {
	app    *App
	inputs []textinput.Model
	focus  int
	role   domain.UserRole
	busy   bool
	errMsg string
}

const (
	regFieldName = iota
	regFieldPassword
	regFieldEmail
	regFieldContact
	regFieldSkills
	regFieldEducation
	regFieldCount
)

func newRegisterView(app *App) *registerView {
	placeholders := []string{
		"Name",
		"Password (min 6 characters)",
		"Email (optional)",
		"Contact number (optional)",
		"Skills (optional)",
		"Education (optional)",
	}
	inputs := make([]textinput.Model, regFieldCount)
	for i, ph := range placeholders {
		input := textinput.New()
		input.Placeholder = ph
		inputs[i] = input
	}
	inputs[regFieldPassword].EchoMode = textinput.EchoPassword
	inputs[regFieldName].Focus()

	return &registerView{
		app:    app,
		inputs: inputs,
		role:   domain.RoleContractor,
	}
}

func (v *registerView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case registerResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = "Registration failed: " + msg.err.Error()
			v.app.logbook.Warn("registration rejected", zap.Error(msg.err))
			return nil
		}
		return func() tea.Msg { return loggedInMsg{user: msg.user} }

	case tea.KeyMsg:
		if v.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus((v.focus + 1) % len(v.inputs))
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + len(v.inputs) - 1) % len(v.inputs))
			return nil
		case "ctrl+t":
			if v.role == domain.RoleContractor {
				v.role = domain.RoleAgent
			} else {
				v.role = domain.RoleContractor
			}
			return nil
		case "esc":
			v.app.showLogin()
			return nil
		case "enter":
			return v.submit()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return cmd
}

func (v *registerView) setFocus(idx int) {
	v.inputs[v.focus].Blur()
	v.focus = idx
	v.inputs[v.focus].Focus()
}

func (v *registerView) submit() tea.Cmd {
	name := strings.TrimSpace(v.inputs[regFieldName].Value())
	if name == "" {
		v.errMsg = "Name is required."
		return nil
	}
	password := v.inputs[regFieldPassword].Value()
	if len(password) < 6 {
		v.errMsg = "Password must be at least 6 characters."
		return nil
	}
	req := api.RegisterRequest{
		Name:          name,
		Role:          v.role,
		Password:      password,
		Email:         strings.TrimSpace(v.inputs[regFieldEmail].Value()),
		ContactNumber: strings.TrimSpace(v.inputs[regFieldContact].Value()),
		Skills:        strings.TrimSpace(v.inputs[regFieldSkills].Value()),
		Education:     strings.TrimSpace(v.inputs[regFieldEducation].Value()),
	}
	v.busy = true
	v.errMsg = ""
	ident := v.app.identity
	return func() tea.Msg {
		user, err := ident.Register(context.Background(), req)
		return registerResultMsg{user: user, err: err}
	}
}

func (v *registerView) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Create Account"))
	b.WriteString("\n\n")

	roleLine := "Role: "
	agent := "AGENT"
	contractor := "CONTRACTOR"
	if v.role == domain.RoleAgent {
		agent = okStyle.Render("[AGENT]")
	} else {
		contractor = okStyle.Render("[CONTRACTOR]")
	}
	roleLine += agent + " " + contractor + mutedStyle.Render("   (Ctrl+T to switch)")
	b.WriteString(roleLine)
	b.WriteString("\n\n")

	for _, input := range v.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if v.busy {
		b.WriteString("\n" + mutedStyle.Render("Creating account..."))
	}
	if v.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(v.errMsg))
	}
	b.WriteString("\n" + mutedStyle.Render("Enter → register and sign in    Esc → back to login"))
	return b.String()
}
