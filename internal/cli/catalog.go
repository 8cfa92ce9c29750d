package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/catalog"
	"github.com/Makepad-fr/shopfront/internal/faq"
	"github.com/Makepad-fr/shopfront/internal/model"
	"github.com/Makepad-fr/shopfront/internal/money"
	"github.com/Makepad-fr/shopfront/internal/tui"
	"github.com/Makepad-fr/shopfront/internal/ui"
)

// DefaultCategory is the phones category the details screen relates to.
const DefaultCategory = 1

const relatedLimit = 10

func (a *App) doProducts(ctx context.Context, args []string) int {
	category := DefaultCategory
	if len(args) > 1 {
		return a.usage("shop products [category]")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			ui.Fail(a.Err, "products: not a category id: "+args[0])
			return 2
		}
		category = n
	}

	products, err := a.API.Products(ctx, category, 0)
	if err != nil {
		return a.apiFailure("products", err)
	}

	t := ui.Current()
	header := ui.C(t.Title, "Products")
	if badge := ui.Badge(cart.ItemCount(a.Carts.Load(ctx))); badge != "" {
		header += "   " + badge
	}
	lines := []string{header, ""}
	if len(products) == 0 {
		lines = append(lines, ui.C(t.Muted, "no products in this category"))
	}
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			ui.C(t.Muted, fmt.Sprintf("%3d", p.ID)), p.Name,
			ui.C(t.Price, money.Format(int64(p.Price), a.Locale))))
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: `shop details <id>` to pick options"))
	ui.Panel(a.Out, lines)
	return 0
}

func (a *App) doDetails(ctx context.Context, args []string) int {
	plain := false
	var rest []string
	for _, arg := range args {
		if arg == "--plain" || arg == "-plain" {
			plain = true
			continue
		}
		rest = append(rest, arg)
	}
	if len(rest) != 1 {
		return a.usage("shop details <id> [--plain]")
	}
	id, err := strconv.Atoi(rest[0])
	if err != nil {
		ui.Fail(a.Err, "details: not a number: "+rest[0])
		return 2
	}

	p, err := a.API.Product(ctx, id)
	if err != nil {
		return a.apiFailure("details", err)
	}
	category := p.CategoryID
	if category == 0 {
		category = DefaultCategory
	}
	related, err := a.API.Products(ctx, category, relatedLimit)
	if err != nil {
		a.Log.Warn("related products unavailable", zap.Int("category", category), zap.Error(err))
		related = nil
	}

	if a.Interactive && !plain {
		m, err := tui.Run(tui.NewDetails(ctx, a.Carts, p, related, a.Locale), a.In, a.Out, true)
		if err != nil {
			ui.Fail(a.Err, "tui: "+err.Error())
			return 1
		}
		if n := m.Badge(); n > 0 {
			ui.OK(a.Out, fmt.Sprintf("%d items in cart", n))
		}
		return 0
	}

	a.printDetails(p, catalog.Related(related, p.ID))
	return 0
}

func (a *App) printDetails(p model.Product, related []model.Product) {
	t := ui.Current()
	def := catalog.DefaultConfiguration()
	lines := []string{
		ui.C(t.Title, p.Name),
		ui.C(t.Price, money.Format(def.Price, a.Locale)),
	}
	if p.Description != "" {
		lines = append(lines, ui.C(t.Muted, p.Description))
	}
	lines = append(lines, "", ui.C(t.Accent, "Storage"))
	for _, c := range catalog.Configurations() {
		lines = append(lines, "  "+ui.Radio(fmt.Sprintf("%-6s %s", c.Storage, money.Format(c.Price, a.Locale)), c == def))
	}
	lines = append(lines, "", ui.C(t.Accent, "Color"))
	for _, c := range catalog.Colors() {
		lines = append(lines, "  "+ui.Radio(c.Name, c == catalog.DefaultColor()))
	}
	if len(related) > 0 {
		lines = append(lines, "", ui.C(t.Accent, "Related products"))
		for _, r := range related {
			lines = append(lines, fmt.Sprintf("  %3d %s  %s", r.ID, r.Name, ui.C(t.Muted, money.Format(int64(r.Price), a.Locale))))
		}
	}
	lines = append(lines, "", ui.C(t.Muted, fmt.Sprintf("Tip: `shop cart add %d -storage 512GB`", p.ID)))
	ui.Panel(a.Out, lines)
}

func (a *App) doFAQ(args []string) int {
	plain := len(args) == 1 && (args[0] == "--plain" || args[0] == "-plain")
	if len(args) > 1 || (len(args) == 1 && !plain) {
		return a.usage("shop faq [--plain]")
	}
	entries := faq.Entries()

	if a.Interactive && !plain {
		if _, err := tui.Run(tui.NewFAQ(entries), a.In, a.Out, true); err != nil {
			ui.Fail(a.Err, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	t := ui.Current()
	lines := []string{ui.C(t.Title, "Frequently asked questions"), ""}
	for _, e := range entries {
		lines = append(lines, ui.C(t.Muted, e.ID+".")+" "+e.Question)
	}
	ui.Panel(a.Out, lines)
	return 0
}

// apiFailure reports an API error and picks the exit code.
func (a *App) apiFailure(cmd string, err error) int {
	switch {
	case errors.Is(err, api.ErrNotFound):
		ui.Fail(a.Err, cmd+": not found")
		return 1
	case errors.Is(err, api.ErrUnauthorized):
		ui.Fail(a.Err, cmd+": not authorized. Run: shop signin")
		return 1
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		ui.Fail(a.Err, fmt.Sprintf("%s: server answered %d %s", cmd, apiErr.StatusCode, strings.TrimSpace(apiErr.Message)))
		return 1
	}
	ui.Fail(a.Err, cmd+": cannot reach the server: "+err.Error())
	return 1
}
