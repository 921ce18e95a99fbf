package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

// registerResultMsg is sent when an async register call completes.
type registerResultMsg struct {
	sess model.Session
	err  error
}

type registerModel struct {
	deps   Deps
	inputs [3]textinput.Model // email, password, confirm
	focus  int
	errMsg string
	busy   bool
	spin   spinner.Model
	width  int
	height int
}

func newRegister(deps Deps) registerModel {
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

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.Prompt = ""
	confirm.CharLimit = 128
	confirm.Width = 36
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return registerModel{
		deps:   deps,
		inputs: [3]textinput.Model{email, password, confirm},
		spin:   sp,
	}
}

func (m *registerModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m registerModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, textinput.Blink
		case "enter":
			return m.submit()
		case "ctrl+l":
			return m, func() tea.Msg { return showLoginMsg{} }
		}

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = model.ErrorMessage(msg.err, "Registration failed")
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

func (m *registerModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// submit checks required fields and the password/confirm match before any
// network call; on a local failure no request is made.
func (m registerModel) submit() (registerModel, tea.Cmd) {
	email := strings.TrimSpace(m.inputs[0].Value())
	password := m.inputs[1].Value()
	confirm := m.inputs[2].Value()

	if email == "" || strings.TrimSpace(password) == "" {
		m.errMsg = "Email and password are required"
		return m, nil
	}
	if password != confirm {
		m.errMsg = "Passwords do not match"
		return m, nil
	}

	m.errMsg = ""
	m.busy = true

	auth := m.deps.Auth
	register := func() tea.Msg {
		sess, err := auth.Register(context.Background(), email, password)
		return registerResultMsg{sess: sess, err: err}
	}
	return m, tea.Batch(register, m.spin.Tick)
}

func (m registerModel) view() string {
	var b strings.Builder

	b.WriteString(appTitleStyle.Render("Job Tracker"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Create account"))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("Email"))
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Confirm"))
	b.WriteString(m.inputs[2].View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" creating account...")
	} else {
		b.WriteString(hintStyle.Render("enter register  tab switch field  ctrl+l login  ctrl+c quit"))
	}

	return centered(m.width, m.height, formBoxStyle.Render(b.String()))
}
