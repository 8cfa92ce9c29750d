package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/Makepad-fr/shopfront/internal/account"
	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/session"
	"github.com/Makepad-fr/shopfront/internal/tui"
	"github.com/Makepad-fr/shopfront/internal/ui"
)

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

func (a *App) doSignIn(ctx context.Context, args []string) int {
	fs := a.newFlagSet("signin")
	name := fs.String("name", "", "user name")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *name == "" && *password == "" && a.Interactive {
		m, err := tui.Run(tui.NewSignIn(ctx, a.Session), a.In, a.Out, false)
		if err != nil {
			ui.Fail(a.Err, "tui: "+err.Error())
			return 1
		}
		info, ok := m.Result()
		if !ok {
			return 1
		}
		ui.OK(a.Out, "signed in as "+info.User.Name)
		return 0
	}

	info, err := a.Session.SignIn(ctx, api.Credentials{Name: *name, Password: *password})
	switch {
	case err == nil:
		ui.OK(a.Out, "signed in as "+info.User.Name)
		return 0
	case *name == "" || *password == "":
		return a.usage("shop signin -name <name> -password <password>")
	case errors.Is(err, session.ErrInvalidCredentials):
		ui.Fail(a.Err, "wrong name or password")
	case errors.Is(err, session.ErrUnreachable):
		ui.Fail(a.Err, "cannot reach the server, try again later")
	default:
		ui.Fail(a.Err, "signin: "+err.Error())
	}
	return 1
}

func (a *App) doSignOut(ctx context.Context) int {
	if err := a.Session.SignOut(ctx); err != nil {
		ui.Fail(a.Err, "signout: "+err.Error())
		return 1
	}
	ui.OK(a.Out, "signed out")
	return 0
}

func (a *App) doWhoAmI(ctx context.Context) int {
	info, err := a.Session.Current(ctx)
	if errors.Is(err, session.ErrNotSignedIn) {
		ui.Fail(a.Err, "not signed in. Run: shop signin")
		return 2
	}
	if err != nil {
		ui.Fail(a.Err, "whoami: "+err.Error())
		return 1
	}

	t := ui.Current()
	lines := []string{
		ui.C(t.Title, info.User.Name),
		ui.C(t.Muted, "email: ") + info.Email,
		ui.C(t.Muted, "id:    ") + strconv.Itoa(info.ID),
	}
	if tok, err := a.Session.Token(ctx); err == nil {
		if c, err := session.Claims(tok); err == nil && c.ExpiresAt != nil {
			exp := c.ExpiresAt.UTC().Format(time.RFC3339)
			if c.Expired(time.Now()) {
				exp = ui.C(t.Error, exp+" (expired)")
			}
			lines = append(lines, ui.C(t.Muted, "token: ")+"expires "+exp)
		} else {
			lines = append(lines, ui.C(t.Muted, "token: ")+"opaque")
		}
	}
	lines = append(lines, ui.C(t.Muted, fmt.Sprintf("env override: %s", session.TokenEnv)))
	ui.Panel(a.Out, lines)
	return 0
}

func (a *App) doPasswd(ctx context.Context, args []string) int {
	fs := a.newFlagSet("passwd")
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	info, err := a.Session.Current(ctx)
	if err != nil {
		ui.Fail(a.Err, "not signed in. Run: shop signin")
		return 2
	}
	tok, err := a.Session.Token(ctx)
	if err != nil {
		ui.Fail(a.Err, "no token found. Set "+session.TokenEnv+" or run `shop signin`")
		return 2
	}
	svc := account.New(a.API.WithToken(tok), a.Log)

	if *oldPassword == "" && *newPassword == "" && a.Interactive {
		m, err := tui.Run(tui.NewPassword(ctx, svc, info.ID), a.In, a.Out, false)
		if err != nil {
			ui.Fail(a.Err, "tui: "+err.Error())
			return 1
		}
		if !m.Changed() {
			return 1
		}
		return 0
	}

	msg, err := svc.Change(ctx, info.ID, *oldPassword, *newPassword)
	switch {
	case err == nil:
		if msg == "" {
			msg = "password changed"
		}
		ui.OK(a.Out, msg)
		return 0
	case errors.Is(err, account.ErrOldPasswordRequired):
		return a.usage("shop passwd -old <current> -new <new>")
	case errors.Is(err, account.ErrWeakPassword):
		ui.Fail(a.Err, err.Error())
		rules := account.CheckPassword(*newPassword).Rules()
		met := 0
		for _, r := range rules {
			if r.OK {
				met++
			}
		}
		ui.Hint(a.Err, "  strength "+ui.Meter(met, len(rules), 10))
		for _, r := range rules {
			if !r.OK {
				ui.Hint(a.Err, "  missing: "+r.Label)
			}
		}
		return 2
	case errors.Is(err, account.ErrSamePassword):
		ui.Fail(a.Err, err.Error())
		return 2
	default:
		ui.Fail(a.Err, "passwd: "+err.Error())
		return 1
	}
}
