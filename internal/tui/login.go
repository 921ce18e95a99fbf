package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

// loginResultMsg is sent when an async login call completes.
type loginResultMsg struct {
	sess model.Session
	err  error
}

type loginModel struct {
	deps   Deps
	inputs [2]textinput.Model // email, password
	focus  int
	errMsg string
	notice string // e.g. shown after a forced logout
	busy   bool
	spin   spinner.Model
	width  int
	height int
}

func newLogin(deps Deps) loginModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.Prompt = ""
	email.CharLimit = 128
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.CharLimit = 128
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return loginModel{
		deps:   deps,
		inputs: [2]textinput.Model{email, password},
		spin:   sp,
	}
}

func (m *loginModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.setFocus(1 - m.focus)
			return m, textinput.Blink
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m, func() tea.Msg { return showRegisterMsg{} }
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = model.ErrorMessage(msg.err, "Login failed")
			return m, nil
		}
		sess := msg.sess
		return m, func() tea.Msg { return authSuccessMsg{sess: sess} }

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit validates locally before any network call: empty or whitespace-only
// fields never reach the server.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := strings.TrimSpace(m.inputs[1].Value())
	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}

	m.errMsg = ""
	m.notice = ""
	m.busy = true

	auth := m.deps.Auth
	login := func() tea.Msg {
		sess, err := auth.Login(context.Background(), email, password)
		return loginResultMsg{sess: sess, err: err}
	}
	return m, tea.Batch(login, m.spin.Tick)
}

func (m loginModel) view() string {
	var b strings.Builder

	b.WriteString(appTitleStyle.Render("Job Tracker"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Login"))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("Email"))
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" logging in...")
	} else {
		b.WriteString(hintStyle.Render("enter login  tab switch field  ctrl+r register  ctrl+c quit"))
	}

	return centered(m.width, m.height, formBoxStyle.Render(b.String()))
}
