// Package cli dispatches the shop subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/session"
	"github.com/Makepad-fr/shopfront/internal/ui"
)

// App carries what the subcommands need. Interactive selects the Bubble
// Tea screens; without it every command prints and exits.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	Carts   *cart.Store
	Session *session.Service
	API     *api.Client
	Locale  language.Tag
	Log     *zap.Logger

	Interactive bool
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Log == nil {
		a.Log = zap.NewNop()
	}
	if len(args) == 0 {
		a.PrintHelp()
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		a.PrintHelp()
		return 0
	case "signin":
		return a.doSignIn(ctx, rest)
	case "signout":
		return a.doSignOut(ctx)
	case "whoami":
		return a.doWhoAmI(ctx)
	case "products":
		return a.doProducts(ctx, rest)
	case "details":
		return a.doDetails(ctx, rest)
	case "cart":
		return a.doCart(ctx, rest)
	case "passwd":
		return a.doPasswd(ctx, rest)
	case "faq":
		return a.doFAQ(rest)
	}

	ui.Fail(a.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(a.Err)
	a.PrintHelp()
	return 2
}

func (a *App) PrintHelp() {
	fmt.Fprint(a.Out, `shop - storefront in the terminal

Usage:
  shop [flags] <subcommand> [args]

Subcommands:
  signin [-name N -password P]          Sign in (form when no flags)
  signout                               Forget the signed-in user and token
  whoami                                Show the signed-in user
  products [category]                   List products (default category 1)
  details <id> [--plain]                Product details and add to cart
  cart                                  Show the cart
  cart add <id> [-color C] [-storage S] [-qty N]
  cart rm <index>                       Remove line at 1-based index
  cart qty <index> <n>                  Set quantity (0 removes)
  cart clear                            Empty the cart
  passwd [-old O -new N]                Change password (form when no flags)
  faq [--plain]                         Frequently asked questions

Examples:
  shop signin
  shop products
  shop cart add 1 -storage 512GB -color "Blue Titanium"
  shop cart qty 1 3
`)
}

func (a *App) usage(msg string) int {
	ui.Fail(a.Err, "usage: "+msg)
	return 2
}

// parseIndex validates a 1-based line index against n lines.
func (a *App) parseIndex(name, raw string, n int) (int, int) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		ui.Fail(a.Err, name+": not a number: "+raw)
		return 0, 2
	}
	if i < 1 || i > n {
		ui.Fail(a.Err, fmt.Sprintf("index out of range: have %d, got %d", n, i))
		ui.Hint(a.Err, "Hint: run `shop cart` to see valid indexes")
		return 0, 2
	}
	return i - 1, 0
}
