package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives a screen until it quits and returns its final state.
func Run[M tea.Model](m M, in io.Reader, out io.Writer, altScreen bool) (M, error) {
	opts := []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(M); ok {
		return fm, nil
	}
	return m, nil
}
