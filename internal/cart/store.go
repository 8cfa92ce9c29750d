package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/store"
)

// Store is the single source of truth for the cart. Every mutation is a
// read-merge-write under one mutex, so concurrent callers in the same
// process cannot lose each other's updates.
type Store struct {
	mu  sync.Mutex
	kv  store.Store
	log *zap.Logger
}

func NewStore(kv store.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log.Named("cart")}
}

// Load returns the persisted cart. A missing, unreadable or malformed
// record yields an empty cart; Load never fails.
func (s *Store) Load(ctx context.Context) Cart {
	raw, err := s.kv.Get(ctx, store.KeyCart)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("read cart", zap.Error(err))
		}
		return Empty()
	}
	c, err := decode(raw)
	if err != nil {
		s.log.Warn("discarding malformed cart", zap.Error(err))
		return Empty()
	}
	return c
}

// Persist writes c under the cart key with its total recomputed.
func (s *Store) Persist(ctx context.Context, c Cart) error {
	total, err := Total(c.Items)
	if err != nil {
		return err
	}
	c.Total = total
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistenceFailed, err)
	}
	if err := s.kv.Set(ctx, store.KeyCart, string(b)); err != nil {
		s.log.Error("persist cart", zap.Error(err), zap.Int("items", len(c.Items)))
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

// AddItem merges candidate into the persisted cart. When the write fails
// the merged cart is still returned along with an ErrPersistenceFailed
// error, so a screen can render it and warn the user.
func (s *Store) AddItem(ctx context.Context, candidate LineItem) (Cart, error) {
	if err := Validate(candidate); err != nil {
		return Cart{}, err
	}
	return s.mutate(ctx, func(c Cart) (Cart, error) {
		s.log.Debug("add item",
			zap.Stringer("key", candidate.Key()),
			zap.Int("quantity", candidate.Quantity))
		return Add(c, candidate)
	})
}

// RemoveItem deletes the line item with key k.
func (s *Store) RemoveItem(ctx context.Context, k Key) (Cart, error) {
	return s.mutate(ctx, func(c Cart) (Cart, error) {
		return Remove(c, k)
	})
}

// SetQuantity replaces a line item's quantity; zero removes it.
func (s *Store) SetQuantity(ctx context.Context, k Key, qty int) (Cart, error) {
	return s.mutate(ctx, func(c Cart) (Cart, error) {
		return SetQuantity(c, k, qty)
	})
}

// Clear deletes the persisted cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, store.KeyCart); err != nil {
		s.log.Error("clear cart", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, fn func(Cart) (Cart, error)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.Load(ctx)
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

func decode(raw string) (Cart, error) {
	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return Cart{}, err
	}
	var items []LineItem
	if err := json.Unmarshal(envelope.Items, &items); err != nil || items == nil {
		return Cart{}, errors.New("items is not a list")
	}
	return normalize(Cart{Items: items}), nil
}
