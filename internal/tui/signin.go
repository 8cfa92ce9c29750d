package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/session"
)

// Authenticator is the part of the session service the sign-in screen
// uses.
type Authenticator interface {
	SignIn(ctx context.Context, creds api.Credentials) (session.LoginInfo, error)
	ClearLoginInfo(ctx context.Context) error
}

type signedInMsg struct {
	info session.LoginInfo
	err  error
}

type loginClearedMsg struct{ err error }

// SignInModel is the sign-in form. It forgets the remembered user as soon
// as it starts and ignores input until that is done.
type SignInModel struct {
	ctx      context.Context
	auth     Authenticator
	inputs   []textinput.Model
	focus    int
	clearing bool
	busy     bool
	status   status

	info     session.LoginInfo
	signedIn bool
}

func NewSignIn(ctx context.Context, auth Authenticator) SignInModel {
	name := textinput.New()
	name.Prompt = "Name     "
	name.Placeholder = "user name"
	name.CharLimit = 64
	name.Focus()

	pass := textinput.New()
	pass.Prompt = "Password "
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128

	return SignInModel{ctx: ctx, auth: auth, inputs: []textinput.Model{name, pass}, clearing: true}
}

// Result reports the signed-in user once the form succeeded.
func (m SignInModel) Result() (session.LoginInfo, bool) { return m.info, m.signedIn }

func (m SignInModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.clearCmd())
}

func (m SignInModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return loginClearedMsg{err: m.auth.ClearLoginInfo(m.ctx)}
	}
}

func (m SignInModel) signInCmd(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		info, err := m.auth.SignIn(m.ctx, creds)
		return signedInMsg{info: info, err: err}
	}
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginClearedMsg:
		m.clearing = false
		if msg.err != nil {
			m.status = status{statusWarn, "Could not clear the previous sign-in"}
		}
		return m, nil

	case signedInMsg:
		m.busy = false
		switch {
		case msg.err == nil:
			m.info, m.signedIn = msg.info, true
			m.status = status{statusOK, "Signed in as " + msg.info.User.Name}
			return m, tea.Quit
		case errors.Is(msg.err, session.ErrInvalidCredentials):
			m.status = status{statusError, "Wrong name or password"}
		case errors.Is(msg.err, session.ErrUnreachable):
			m.status = status{statusError, "Cannot reach the server, try again later"}
		default:
			m.status = status{statusError, msg.err.Error()}
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy || m.clearing {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m.setFocus(m.focus + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1), nil
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1), nil
			}
			name := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if name == "" || pass == "" {
				m.status = status{statusError, "Please fill in all fields"}
				return m, nil
			}
			m.busy = true
			m.status = status{}
			return m, m.signInCmd(api.Credentials{Name: name, Password: pass})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m SignInModel) setFocus(i int) SignInModel {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

func (m SignInModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.clearing {
		b.WriteString(mutedStyle.Render("Loading..."))
	} else if m.busy {
		b.WriteString(mutedStyle.Render("Signing in..."))
	} else if s := m.status.View(); s != "" {
		b.WriteString(s)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field • enter: sign in • esc: quit"))
	return frame(b.String())
}
