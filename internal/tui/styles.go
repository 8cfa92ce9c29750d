// Package tui holds the Bubble Tea screens: sign-in, product details,
// change password and FAQ.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	radioOn  = "●"
	radioOff = "○"
	checkOn  = "✔"
	checkOff = "✖"
)

func frame(inner string) string {
	return frameStyle.Render(inner)
}

// status is the one-line feedback under a form.
type status struct {
	kind int
	text string
}

const (
	statusNone = iota
	statusOK
	statusWarn
	statusError
)

func (s status) View() string {
	switch s.kind {
	case statusOK:
		return successStyle.Render(checkOn + " " + s.text)
	case statusWarn:
		return warningStyle.Render("! " + s.text)
	case statusError:
		return errorStyle.Render(checkOff + " " + s.text)
	}
	return ""
}
