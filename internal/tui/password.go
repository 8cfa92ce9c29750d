package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shopfront/internal/account"
)

// PasswordChanger is the part of the account service the screen uses.
type PasswordChanger interface {
	Change(ctx context.Context, userID int, oldPassword, newPassword string) (string, error)
}

// CloseDelay is how long the success message stays before the screen
// closes.
const CloseDelay = 2 * time.Second

type passwordChangedMsg struct {
	message string
	err     error
}

type closeMsg struct{}

type PasswordModel struct {
	ctx    context.Context
	svc    PasswordChanger
	userID int
	inputs []textinput.Model
	focus  int
	busy   bool
	done   bool
	status status
}

func NewPassword(ctx context.Context, svc PasswordChanger, userID int) PasswordModel {
	oldIn := textinput.New()
	oldIn.Prompt = "Old password "
	oldIn.EchoMode = textinput.EchoPassword
	oldIn.EchoCharacter = '•'
	oldIn.CharLimit = 128
	oldIn.Focus()

	newIn := textinput.New()
	newIn.Prompt = "New password "
	newIn.EchoMode = textinput.EchoPassword
	newIn.EchoCharacter = '•'
	newIn.CharLimit = 128

	return PasswordModel{ctx: ctx, svc: svc, userID: userID, inputs: []textinput.Model{oldIn, newIn}}
}

// Changed reports whether the server accepted the new password.
func (m PasswordModel) Changed() bool { return m.done }

func (m PasswordModel) Init() tea.Cmd { return textinput.Blink }

func (m PasswordModel) changeCmd(oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		msg, err := m.svc.Change(m.ctx, m.userID, oldPassword, newPassword)
		return passwordChangedMsg{message: msg, err: err}
	}
}

func (m PasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeMsg:
		return m, tea.Quit

	case passwordChangedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = status{statusError, passwordError(msg.err)}
			return m, nil
		}
		m.done = true
		text := msg.message
		if text == "" {
			text = "Password changed"
		}
		m.status = status{statusOK, text}
		return m, tea.Tick(CloseDelay, func(time.Time) tea.Msg { return closeMsg{} })

	case tea.KeyMsg:
		if m.busy || m.done {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
			m.inputs[m.focus].Focus()
			m.inputs[1-m.focus].Blur()
			return m, nil
		case "enter":
			oldPassword, newPassword := m.inputs[0].Value(), m.inputs[1].Value()
			if err := account.ValidateChange(oldPassword, newPassword); err != nil {
				m.status = status{statusError, passwordError(err)}
				return m, nil
			}
			m.busy = true
			m.status = status{}
			return m, m.changeCmd(oldPassword, newPassword)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func passwordError(err error) string {
	switch {
	case errors.Is(err, account.ErrOldPasswordRequired):
		return "Enter your current password"
	case errors.Is(err, account.ErrWeakPassword):
		return "The new password does not meet all requirements"
	case errors.Is(err, account.ErrSamePassword):
		return "The new password must be different from the current one"
	case errors.Is(err, account.ErrRejected):
		return "Current password is incorrect"
	case errors.Is(err, account.ErrSessionExpired):
		return "Your session has expired, sign in again"
	}
	return "Could not change the password: " + err.Error()
}

func (m PasswordModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Change password") + "\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}

	if newPassword := m.inputs[1].Value(); newPassword != "" {
		b.WriteString("\n")
		for _, r := range account.CheckPassword(newPassword).Rules() {
			if r.OK {
				b.WriteString(successStyle.Render(checkOn+" "+r.Label) + "\n")
			} else {
				b.WriteString(mutedStyle.Render(checkOff+" "+r.Label) + "\n")
			}
		}
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(mutedStyle.Render("Saving..."))
	} else if s := m.status.View(); s != "" {
		b.WriteString(s)
	}
	b.WriteString("\n" + helpStyle.Render("tab: switch field • enter: save • esc: back"))
	return frame(b.String())
}
