package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Makepad-fr/shopfront/internal/account"
	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/faq"
	"github.com/Makepad-fr/shopfront/internal/model"
	"github.com/Makepad-fr/shopfront/internal/session"
	"github.com/Makepad-fr/shopfront/internal/store/memstore"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// send feeds msg to m and, if the resulting command produces a message,
// returns it for the caller to feed back.
func send[M tea.Model](t *testing.T, m M, msg tea.Msg) (M, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(M)
	require.True(t, ok)
	return out, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// ---- sign in

type fakeAuth struct {
	err     error
	creds   api.Credentials
	cleared int
}

func (f *fakeAuth) SignIn(_ context.Context, creds api.Credentials) (session.LoginInfo, error) {
	f.creds = creds
	if f.err != nil {
		return session.LoginInfo{}, f.err
	}
	return session.LoginInfo{ID: 1, User: model.User{ID: 1, Name: creds.Name}}, nil
}

func (f *fakeAuth) ClearLoginInfo(context.Context) error {
	f.cleared++
	return nil
}

// readySignIn returns a sign-in form that has finished forgetting the
// previous user.
func readySignIn(t *testing.T, auth *fakeAuth) SignInModel {
	t.Helper()
	m := NewSignIn(context.Background(), auth)
	m, _ = send(t, m, m.clearCmd()())
	return m
}

func fillSignIn(t *testing.T, m SignInModel, name, pass string) (SignInModel, tea.Cmd) {
	t.Helper()
	m, _ = send(t, m, keyRunes(name))
	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, keyRunes(pass))
	return send(t, m, keyEnter)
}

func TestSignIn_ClearsLoginInfoOnStart(t *testing.T) {
	auth := &fakeAuth{}
	m := NewSignIn(context.Background(), auth)
	msg := m.clearCmd()()
	m, _ = send(t, m, msg)
	assert.Equal(t, 1, auth.cleared)
	assert.Equal(t, statusNone, m.status.kind)
}

func TestSignIn_IgnoresInputUntilCleared(t *testing.T) {
	auth := &fakeAuth{}
	m := NewSignIn(context.Background(), auth)
	assert.Contains(t, m.View(), "Loading...")

	m, cmd := fillSignIn(t, m, "demo", "Demo@123")
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Empty(t, m.inputs[0].Value())
	assert.Empty(t, auth.creds)

	m, _ = send(t, m, m.clearCmd()())
	m, cmd = fillSignIn(t, m, "demo", "Demo@123")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
}

func TestSignIn_RequiresAllFields(t *testing.T) {
	auth := &fakeAuth{}
	m := readySignIn(t, auth)
	m, _ = send(t, m, keyRunes("demo"))
	m, _ = send(t, m, keyEnter)
	m, cmd := send(t, m, keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, "Please fill in all fields", m.status.text)
	assert.Contains(t, m.View(), "Please fill in all fields")
}

func TestSignIn_Success(t *testing.T) {
	auth := &fakeAuth{}
	m, cmd := fillSignIn(t, readySignIn(t, auth), "demo", "Demo@123")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	m, cmd = send(t, m, cmd())
	assert.True(t, isQuit(cmd))
	info, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "demo", info.User.Name)
	assert.Equal(t, api.Credentials{Name: "demo", Password: "Demo@123"}, auth.creds)
}

func TestSignIn_ErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{session.ErrInvalidCredentials, "Wrong name or password"},
		{session.ErrUnreachable, "Cannot reach the server"},
		{errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, cmd := fillSignIn(t, readySignIn(t, &fakeAuth{err: tt.err}), "demo", "x")
			m, cmd = send(t, m, cmd())
			assert.Nil(t, cmd)
			assert.False(t, m.busy)
			assert.Contains(t, m.status.text, tt.want)
			_, ok := m.Result()
			assert.False(t, ok)
		})
	}
}

// ---- details

func iphone() model.Product {
	return model.Product{ID: 1, Name: "iPhone 15 Pro Max", Price: 41990000, CategoryID: 1}
}

func TestDetails_AddsSelectionAndUpdatesBadge(t *testing.T) {
	ctx := context.Background()
	carts := cart.NewStore(memstore.New(), nil)
	related := []model.Product{iphone(), {ID: 2, Name: "iPhone 15 Pro", Price: 28990000}}
	m := NewDetails(ctx, carts, iphone(), related, language.English)

	m, _ = send(t, m, m.Init()())
	assert.Equal(t, 0, m.Badge())

	sel := m.Selection()
	assert.Equal(t, "256GB", sel.Storage)
	assert.Equal(t, "Natural Titanium", sel.Color)
	assert.Equal(t, int64(41990000), sel.UnitPrice)

	m, _ = send(t, m, keyRight) // storage wraps to 1TB
	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyRight) // Blue Titanium
	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyRunes("+"))

	sel = m.Selection()
	assert.Equal(t, "1TB", sel.Storage)
	assert.Equal(t, "Blue Titanium", sel.Color)
	assert.Equal(t, 2, sel.Quantity)
	assert.Equal(t, int64(52990000), sel.UnitPrice)

	m, cmd := send(t, m, keyRunes("a"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, 2, m.Badge())
	assert.Equal(t, statusOK, m.status.kind)

	saved := carts.Load(ctx)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, int64(105980000), saved.Total)

	view := m.View()
	assert.Contains(t, view, "Related products")
	assert.Contains(t, view, "iPhone 15 Pro")
	assert.Equal(t, 1, strings.Count(view, "iPhone 15 Pro Max"))
}

func TestDetails_QuantityStaysPositive(t *testing.T) {
	m := NewDetails(context.Background(), cart.NewStore(memstore.New(), nil), iphone(), nil, language.English)
	m.row = rowQuantity
	m, _ = send(t, m, keyRunes("-"))
	m, _ = send(t, m, keyRunes("-"))
	assert.Equal(t, 1, m.Selection().Quantity)
}

func TestDetails_WarnsWhenCartIsNotSaved(t *testing.T) {
	kv := memstore.New()
	kv.FailSet = errors.New("disk full")
	m := NewDetails(context.Background(), cart.NewStore(kv, nil), iphone(), nil, language.English)

	m, cmd := send(t, m, keyRunes("a"))
	m, _ = send(t, m, cmd())
	assert.Equal(t, statusWarn, m.status.kind)
	assert.Contains(t, m.status.text, "may be lost on restart")
	assert.Equal(t, 1, m.Badge())
}

// ---- change password

type fakeChanger struct {
	err   error
	calls int
}

func (f *fakeChanger) Change(context.Context, int, string, string) (string, error) {
	f.calls++
	return "Password changed", f.err
}

func fillPassword(t *testing.T, m PasswordModel, oldPassword, newPassword string) (PasswordModel, tea.Cmd) {
	t.Helper()
	if oldPassword != "" {
		m, _ = send(t, m, keyRunes(oldPassword))
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if newPassword != "" {
		m, _ = send(t, m, keyRunes(newPassword))
	}
	return send(t, m, keyEnter)
}

func TestPassword_ValidatesLocally(t *testing.T) {
	tests := []struct {
		old, new string
		want     string
	}{
		{"", "New@1234", "Enter your current password"},
		{"Demo@123", "short", "does not meet all requirements"},
		{"Demo@123", "Demo@123", "must be different"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := &fakeChanger{}
			m, cmd := fillPassword(t, NewPassword(context.Background(), f, 1), tt.old, tt.new)
			assert.Nil(t, cmd)
			assert.Contains(t, m.status.text, tt.want)
			assert.Zero(t, f.calls)
		})
	}
}

func TestPassword_ChecklistFollowsInput(t *testing.T) {
	m, _ := fillPassword(t, NewPassword(context.Background(), &fakeChanger{}, 1), "Demo@123", "abc")
	view := m.View()
	assert.Contains(t, view, "One lowercase letter")
	assert.Contains(t, view, "At least 6 characters")
}

func TestPassword_SuccessClosesAfterDelay(t *testing.T) {
	f := &fakeChanger{}
	m, cmd := fillPassword(t, NewPassword(context.Background(), f, 1), "Demo@123", "New@1234")
	require.NotNil(t, cmd)

	m, cmd = send(t, m, cmd())
	assert.True(t, m.Changed())
	assert.Equal(t, "Password changed", m.status.text)
	assert.NotNil(t, cmd)

	// keys are ignored while the success message shows
	m, cmd = send(t, m, keyEnter)
	assert.Nil(t, cmd)

	_, cmd = send(t, m, closeMsg{})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, 1, f.calls)
}

func TestPassword_ServerRejects(t *testing.T) {
	f := &fakeChanger{err: account.ErrRejected}
	m, cmd := fillPassword(t, NewPassword(context.Background(), f, 1), "Wrong@123", "New@1234")
	m, cmd = send(t, m, cmd())
	assert.Nil(t, cmd)
	assert.False(t, m.Changed())
	assert.Equal(t, "Current password is incorrect", m.status.text)
}

// ---- faq

func TestFAQ(t *testing.T) {
	m := NewFAQ(faq.Entries())
	e, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", e.ID)

	m, _ = send(t, m, keyDown)
	e, _ = m.Selected()
	assert.Equal(t, "2", e.ID)

	_, cmd := send(t, m, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}
