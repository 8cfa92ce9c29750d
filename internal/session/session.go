// Package session keeps the signed-in user and their bearer token in the
// key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/api"
	"github.com/Makepad-fr/shopfront/internal/model"
	"github.com/Makepad-fr/shopfront/internal/store"
)

// TokenEnv overrides the stored token when set.
const TokenEnv = "SHOP_TOKEN"

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrUnreachable        = errors.New("cannot connect to server")
	ErrNotSignedIn        = errors.New("not signed in")
)

// LoginInfo is what the app remembers about the signed-in user.
type LoginInfo struct {
	ID    int        `json:"id"`
	Email string     `json:"email"`
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Authenticator is the part of the API client sign-in needs.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (api.LoginResponse, error)
}

type Service struct {
	kv       store.Store
	auth     Authenticator
	log      *zap.Logger
	validate *validator.Validate
}

func New(kv store.Store, auth Authenticator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{kv: kv, auth: auth, log: log.Named("session"), validate: validator.New()}
}

// SignIn checks creds against the API and persists the result under
// loginInfo and userToken.
func (s *Service) SignIn(ctx context.Context, creds api.Credentials) (LoginInfo, error) {
	creds.Name = strings.TrimSpace(creds.Name)
	if err := s.validate.Struct(creds); err != nil {
		return LoginInfo{}, fmt.Errorf("%w: name and password are required", ErrInvalidCredentials)
	}

	resp, err := s.auth.Login(ctx, creds)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return LoginInfo{}, ErrInvalidCredentials
	case err != nil:
		s.log.Warn("sign in", zap.String("name", creds.Name), zap.Error(err))
		return LoginInfo{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	case !resp.Status || resp.Token == "":
		return LoginInfo{}, ErrInvalidCredentials
	}

	info := LoginInfo{
		ID:    resp.User.ID,
		Email: resp.User.Email,
		Token: stripBearer(resp.Token),
		User:  resp.User,
	}
	b, err := json.Marshal(info)
	if err != nil {
		return LoginInfo{}, fmt.Errorf("encode login info: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyUserToken, info.Token); err != nil {
		return LoginInfo{}, fmt.Errorf("save token: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyLoginInfo, string(b)); err != nil {
		return LoginInfo{}, fmt.Errorf("save login info: %w", err)
	}
	s.log.Info("signed in", zap.Int("user_id", info.ID))
	return info, nil
}

// ClearLoginInfo forgets the remembered user but keeps the token.
func (s *Service) ClearLoginInfo(ctx context.Context) error {
	return s.kv.Delete(ctx, store.KeyLoginInfo)
}

func (s *Service) Current(ctx context.Context) (LoginInfo, error) {
	raw, err := s.kv.Get(ctx, store.KeyLoginInfo)
	if errors.Is(err, store.ErrNotFound) {
		return LoginInfo{}, ErrNotSignedIn
	}
	if err != nil {
		return LoginInfo{}, fmt.Errorf("read login info: %w", err)
	}
	var info LoginInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.log.Warn("discarding unreadable login info", zap.Error(err))
		return LoginInfo{}, ErrNotSignedIn
	}
	return info, nil
}

// Token returns the bearer token: SHOP_TOKEN first, then the stored one.
func (s *Service) Token(ctx context.Context) (string, error) {
	if env := strings.TrimSpace(os.Getenv(TokenEnv)); env != "" {
		return stripBearer(env), nil
	}
	raw, err := s.kv.Get(ctx, store.KeyUserToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrNotSignedIn
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	tok := stripBearer(strings.TrimSpace(raw))
	if tok == "" {
		return "", ErrNotSignedIn
	}
	return tok, nil
}

func (s *Service) SignOut(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyLoginInfo); err != nil {
		return err
	}
	return s.kv.Delete(ctx, store.KeyUserToken)
}

// TokenClaims is the readable part of a token. The signature is not
// checked; only the server can do that.
type TokenClaims struct {
	Subject   string
	Name      string
	Email     string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

func Claims(token string) (TokenClaims, error) {
	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(stripBearer(token), &claims); err != nil {
		return TokenClaims{}, fmt.Errorf("parse token: %w", err)
	}
	out := TokenClaims{Subject: claims.Subject, Name: claims.Name, Email: claims.Email}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		out.ExpiresAt = &t
	}
	return out, nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
