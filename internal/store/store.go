// Package store defines the key-value persistence port used by the cart and
// the session. Values are opaque strings; callers own their encoding.
package store

import (
	"context"
	"errors"
)

// Fixed keys shared across the client.
const (
	KeyCart      = "cart"
	KeyLoginInfo = "loginInfo"
	KeyUserToken = "userToken"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a durable string-valued key-value store.
// Delete on an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
