package account

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/api"
)

var (
	// ErrRejected means the server refused the change, usually because
	// the old password was wrong.
	ErrRejected = errors.New("password change rejected")
	// ErrSessionExpired means the bearer token was not accepted.
	ErrSessionExpired = errors.New("session expired, sign in again")
)

type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int, req api.ChangePasswordRequest) (api.StatusResponse, error)
}

type Service struct {
	api PasswordChanger
	log *zap.Logger
}

func New(client PasswordChanger, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: client, log: log.Named("account")}
}

// Change validates locally and then asks the server. The server's
// message is returned on success.
func (s *Service) Change(ctx context.Context, userID int, oldPassword, newPassword string) (string, error) {
	if err := ValidateChange(oldPassword, newPassword); err != nil {
		return "", err
	}
	resp, err := s.api.ChangePassword(ctx, userID, api.ChangePasswordRequest{
		OldPassword: oldPassword,
		Password:    newPassword,
	})
	if errors.Is(err, api.ErrUnauthorized) {
		return "", ErrSessionExpired
	}
	if err != nil {
		s.log.Warn("change password", zap.Int("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("change password: %w", err)
	}
	if !resp.Status {
		if resp.Message != "" {
			return "", fmt.Errorf("%w: %s", ErrRejected, resp.Message)
		}
		return "", ErrRejected
	}
	s.log.Info("password changed", zap.Int("user_id", userID))
	return resp.Message, nil
}
