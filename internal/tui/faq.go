package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/shopfront/internal/faq"
)

type faqItem faq.Entry

func (i faqItem) Title() string       { return i.Question }
func (i faqItem) Description() string { return "" }
func (i faqItem) FilterValue() string { return i.Question }

// faqDelegate renders one question per line.
type faqDelegate struct{}

func (d faqDelegate) Height() int                             { return 1 }
func (d faqDelegate) Spacing() int                            { return 0 }
func (d faqDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d faqDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(faqItem)
	prefix := "  "
	text := it.Question
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		text = accentStyle.Render(text)
	}
	fmt.Fprintf(w, "%s%s %s", prefix, mutedStyle.Render(it.ID+"."), text)
}

type FAQModel struct {
	list list.Model
}

func NewFAQ(entries []faq.Entry) FAQModel {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, faqItem(e))
	}
	l := list.New(items, faqDelegate{}, 80, len(entries)+6)
	l.Title = "Frequently asked questions"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	return FAQModel{list: l}
}

func (m FAQModel) Init() tea.Cmd { return nil }

func (m FAQModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc":
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected is the highlighted entry.
func (m FAQModel) Selected() (faq.Entry, bool) {
	it, ok := m.list.SelectedItem().(faqItem)
	return faq.Entry(it), ok
}

func (m FAQModel) View() string {
	return frame(m.list.View())
}
