package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/catalog"
	"github.com/Makepad-fr/shopfront/internal/model"
	"github.com/Makepad-fr/shopfront/internal/money"
)

// CartStore is the part of the cart store the details screen uses.
type CartStore interface {
	Load(ctx context.Context) cart.Cart
	AddItem(ctx context.Context, candidate cart.LineItem) (cart.Cart, error)
}

const (
	rowStorage = iota
	rowColor
	rowQuantity
	rowAdd
	rowCount
)

const maxQuantity = 99

type cartLoadedMsg struct{ count int }

type itemAddedMsg struct {
	cart cart.Cart
	err  error
}

// DetailsModel shows one product with its storage and color options and
// adds the selection to the cart.
type DetailsModel struct {
	ctx     context.Context
	carts   CartStore
	product model.Product
	related []model.Product
	locale  language.Tag

	configs  []catalog.Configuration
	colors   []catalog.Color
	row      int
	cfgIdx   int
	colorIdx int
	qty      int

	badge  int
	busy   bool
	status status
}

func NewDetails(ctx context.Context, carts CartStore, p model.Product, related []model.Product, locale language.Tag) DetailsModel {
	m := DetailsModel{
		ctx:     ctx,
		carts:   carts,
		product: p,
		related: catalog.Related(related, p.ID),
		locale:  locale,
		configs: catalog.Configurations(),
		colors:  catalog.Colors(),
		qty:     1,
	}
	def := catalog.DefaultConfiguration()
	for i, c := range m.configs {
		if c == def {
			m.cfgIdx = i
		}
	}
	return m
}

// Badge is the number of items in the cart, shown in the header.
func (m DetailsModel) Badge() int { return m.badge }

// Selection is the line item the add button would submit.
func (m DetailsModel) Selection() cart.LineItem {
	return catalog.Candidate(m.product, m.colors[m.colorIdx], m.configs[m.cfgIdx], m.qty)
}

func (m DetailsModel) Init() tea.Cmd {
	return func() tea.Msg {
		return cartLoadedMsg{count: cart.ItemCount(m.carts.Load(m.ctx))}
	}
}

func (m DetailsModel) addCmd(candidate cart.LineItem) tea.Cmd {
	return func() tea.Msg {
		c, err := m.carts.AddItem(m.ctx, candidate)
		return itemAddedMsg{cart: c, err: err}
	}
}

func (m DetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		m.badge = msg.count
		return m, nil

	case itemAddedMsg:
		m.busy = false
		switch {
		case msg.err == nil:
			m.badge = cart.ItemCount(msg.cart)
			m.status = status{statusOK, "Added to cart"}
		case errors.Is(msg.err, cart.ErrPersistenceFailed):
			m.badge = cart.ItemCount(msg.cart)
			m.status = status{statusWarn, "Added, but the cart could not be saved and may be lost on restart"}
		default:
			m.status = status{statusError, "Could not add to cart: " + msg.err.Error()}
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.row = (m.row + rowCount - 1) % rowCount
		case "down", "j", "tab":
			m.row = (m.row + 1) % rowCount
		case "left", "h", "-":
			m = m.step(-1)
		case "right", "l", "+":
			m = m.step(1)
		case "a":
			return m.submit()
		case "enter":
			if m.row == rowAdd {
				return m.submit()
			}
			m.row++
		}
	}
	return m, nil
}

func (m DetailsModel) step(delta int) DetailsModel {
	switch m.row {
	case rowStorage:
		m.cfgIdx = wrap(m.cfgIdx+delta, len(m.configs))
	case rowColor:
		m.colorIdx = wrap(m.colorIdx+delta, len(m.colors))
	case rowQuantity:
		m.qty = min(max(m.qty+delta, 1), maxQuantity)
	}
	return m
}

func (m DetailsModel) submit() (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = status{}
	return m, m.addCmd(m.Selection())
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (m DetailsModel) View() string {
	var b strings.Builder
	header := titleStyle.Render(m.product.Name)
	if m.badge > 0 {
		header += "   " + accentStyle.Render(fmt.Sprintf("🛒 %d", m.badge))
	}
	b.WriteString(header + "\n")
	sel := m.Selection()
	b.WriteString(priceStyle.Render(money.Format(sel.UnitPrice, m.locale)) + "\n")
	if m.product.Description != "" {
		b.WriteString(mutedStyle.Render(m.product.Description) + "\n")
	}
	b.WriteString("\n")

	var opts []string
	for i, c := range m.configs {
		opts = append(opts, radio(c.Storage, i == m.cfgIdx))
	}
	b.WriteString(m.rowLabel(rowStorage, "Storage ") + strings.Join(opts, "  ") + "\n")

	opts = opts[:0]
	for i, c := range m.colors {
		opts = append(opts, radio(c.Name, i == m.colorIdx))
	}
	b.WriteString(m.rowLabel(rowColor, "Color   ") + strings.Join(opts, "  ") + "\n")
	b.WriteString(m.rowLabel(rowQuantity, "Quantity") + fmt.Sprintf("‹ %d ›", m.qty) + "\n\n")

	button := "[ Add to cart ]"
	if m.row == rowAdd {
		button = selectedStyle.Render(button)
	}
	b.WriteString(button + "\n")
	if m.busy {
		b.WriteString(mutedStyle.Render("Saving...") + "\n")
	} else if s := m.status.View(); s != "" {
		b.WriteString(s + "\n")
	}

	if len(m.related) > 0 {
		b.WriteString("\n" + titleStyle.Render("Related products") + "\n")
		for _, p := range m.related {
			b.WriteString(fmt.Sprintf("  %s  %s\n", p.Name, mutedStyle.Render(money.Format(int64(p.Price), m.locale))))
		}
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: option • ←/→: change • a: add to cart • q: back"))
	return frame(b.String())
}

func (m DetailsModel) rowLabel(row int, label string) string {
	if row == m.row {
		return selectedStyle.Render("> "+label) + " "
	}
	return "  " + mutedStyle.Render(label) + " "
}

func radio(label string, on bool) string {
	if on {
		return accentStyle.Render(radioOn + " " + label)
	}
	return mutedStyle.Render(radioOff) + " " + label
}
