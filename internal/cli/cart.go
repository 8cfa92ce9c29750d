package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/catalog"
	"github.com/Makepad-fr/shopfront/internal/money"
	"github.com/Makepad-fr/shopfront/internal/ui"
)

func (a *App) doCart(ctx context.Context, args []string) int {
	if len(args) == 0 {
		return a.doCartShow(ctx)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		return a.doCartAdd(ctx, rest)
	case "rm":
		if len(rest) != 1 {
			return a.usage("shop cart rm <index>")
		}
		return a.doCartRemove(ctx, rest[0])
	case "qty":
		if len(rest) != 2 {
			return a.usage("shop cart qty <index> <n>")
		}
		return a.doCartQuantity(ctx, rest[0], rest[1])
	case "clear":
		return a.doCartClear(ctx)
	}
	return a.usage("shop cart [add|rm|qty|clear]")
}

func (a *App) doCartShow(ctx context.Context) int {
	c := a.Carts.Load(ctx)
	t := ui.Current()

	header := ui.C(t.Title, "Cart")
	if badge := ui.Badge(cart.ItemCount(c)); badge != "" {
		header += "   " + badge
	}
	lines := []string{header, ""}
	if len(c.Items) == 0 {
		lines = append(lines, ui.C(t.Muted, "your cart is empty"))
	}
	for i, it := range c.Items {
		lines = append(lines,
			fmt.Sprintf("%s %s", ui.C(t.Muted, fmt.Sprintf("%2d.", i+1)), it.Title),
			ui.C(t.Muted, fmt.Sprintf("    %s, %s  x%d  %s", it.Color, it.Storage, it.Quantity,
				money.Format(it.UnitPrice, a.Locale))),
		)
	}
	lines = append(lines, "",
		ui.C(t.Accent, "Total ")+ui.C(t.Price, money.Format(c.Total, a.Locale)))
	ui.Panel(a.Out, lines)
	return 0
}

func (a *App) doCartAdd(ctx context.Context, args []string) int {
	if len(args) == 0 {
		return a.usage("shop cart add <id> [-color C] [-storage S] [-qty N]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		ui.Fail(a.Err, "add: not a number: "+args[0])
		return 2
	}

	fs := a.newFlagSet("cart add")
	colorName := fs.String("color", catalog.DefaultColor().Name, "color")
	storage := fs.String("storage", catalog.DefaultConfiguration().Storage, "storage")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	color, err := catalog.ColorFor(*colorName)
	if err != nil {
		ui.Fail(a.Err, "add: "+err.Error())
		return 2
	}
	cfg, err := catalog.ConfigurationFor(*storage)
	if err != nil {
		ui.Fail(a.Err, "add: "+err.Error())
		return 2
	}

	p, err := a.API.Product(ctx, id)
	if err != nil {
		return a.apiFailure("add", err)
	}

	c, err := a.Carts.AddItem(ctx, catalog.Candidate(p, color, cfg, *qty))
	switch {
	case errors.Is(err, cart.ErrInvalidItem):
		ui.Fail(a.Err, "add: "+err.Error())
		return 2
	case errors.Is(err, cart.ErrPersistenceFailed):
		ui.Warn(a.Err, "added, but the cart could not be saved and may be lost on restart")
		return 1
	case err != nil:
		ui.Fail(a.Err, "add: "+err.Error())
		return 1
	}
	ui.OK(a.Out, fmt.Sprintf("added %s (%s, %s) x%d  %s",
		p.Name, color.Name, cfg.Storage, *qty, ui.Badge(cart.ItemCount(c))))
	return 0
}

func (a *App) doCartRemove(ctx context.Context, raw string) int {
	c := a.Carts.Load(ctx)
	idx, code := a.parseIndex("rm", raw, len(c.Items))
	if code != 0 {
		return code
	}
	if _, err := a.Carts.RemoveItem(ctx, c.Items[idx].Key()); err != nil {
		return a.cartFailure("rm", err)
	}
	ui.OK(a.Out, "removed "+c.Items[idx].Title)
	return 0
}

func (a *App) doCartQuantity(ctx context.Context, rawIndex, rawQty string) int {
	c := a.Carts.Load(ctx)
	idx, code := a.parseIndex("qty", rawIndex, len(c.Items))
	if code != 0 {
		return code
	}
	n, err := strconv.Atoi(rawQty)
	if err != nil || n < 0 {
		ui.Fail(a.Err, "qty: not a quantity: "+rawQty)
		return 2
	}
	if _, err := a.Carts.SetQuantity(ctx, c.Items[idx].Key(), n); err != nil {
		return a.cartFailure("qty", err)
	}
	if n == 0 {
		ui.OK(a.Out, "removed "+c.Items[idx].Title)
	} else {
		ui.OK(a.Out, fmt.Sprintf("quantity set to %d", n))
	}
	return 0
}

func (a *App) doCartClear(ctx context.Context) int {
	if err := a.Carts.Clear(ctx); err != nil {
		return a.cartFailure("clear", err)
	}
	ui.OK(a.Out, "cart cleared")
	return 0
}

func (a *App) cartFailure(cmd string, err error) int {
	if errors.Is(err, cart.ErrPersistenceFailed) {
		ui.Warn(a.Err, cmd+": the cart could not be saved")
		return 1
	}
	if errors.Is(err, cart.ErrItemNotFound) {
		ui.Fail(a.Err, cmd+": line item no longer in the cart")
		return 1
	}
	ui.Fail(a.Err, cmd+": "+err.Error())
	return 1
}
