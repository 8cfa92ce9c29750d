// Package cart is the local shopping cart: line items merged by identity
// key, a derived total, and a persisted copy in the key-value store.
package cart

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// MaxQuantity is the largest quantity one line item can hold.
const MaxQuantity = 9999

// Variant distinguishes otherwise identical products.
type Variant struct {
	Color   string `json:"color"`
	Storage string `json:"storage"`
}

// LineItem is one product+variant entry. UnitPrice is in whole currency
// units and is locked in when the item is first added.
type LineItem struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"price" validate:"gte=0"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=9999"`
	Variant
}

// Key identifies a line item inside a cart.
type Key struct {
	ID      string
	Color   string
	Storage string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.ID, k.Color, k.Storage)
}

func (it LineItem) Key() Key {
	return Key{ID: it.ID, Color: it.Color, Storage: it.Storage}
}

func (it LineItem) Subtotal() int64 {
	return it.UnitPrice * int64(it.Quantity)
}

type Cart struct {
	Items []LineItem `json:"items"`
	Total int64      `json:"total"`
}

// Empty returns a cart with no items and a non-nil item slice.
func Empty() Cart {
	return Cart{Items: []LineItem{}}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports ErrInvalidItem for a candidate that can never be stored.
func Validate(candidate LineItem) error {
	if err := validate.Struct(candidate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}

// Add merges candidate into c and returns the new cart. c is not modified.
// An existing item keeps its stored title, image and price; only its
// quantity grows.
func Add(c Cart, candidate LineItem) (Cart, error) {
	if err := Validate(candidate); err != nil {
		return c, err
	}
	out := clone(c)
	if i := out.index(candidate.Key()); i >= 0 {
		qty := out.Items[i].Quantity + candidate.Quantity
		if qty > MaxQuantity {
			return c, fmt.Errorf("%w: quantity %d exceeds %d", ErrInvalidItem, qty, MaxQuantity)
		}
		out.Items[i].Quantity = qty
	} else {
		out.Items = append(out.Items, candidate)
	}
	return withTotal(c, out)
}

// Remove drops the item with key k.
func Remove(c Cart, k Key) (Cart, error) {
	i := c.index(k)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrItemNotFound, k)
	}
	out := clone(c)
	out.Items = append(out.Items[:i], out.Items[i+1:]...)
	return withTotal(c, out)
}

// SetQuantity replaces the quantity of the item with key k. Zero removes it.
func SetQuantity(c Cart, k Key, qty int) (Cart, error) {
	if qty < 0 || qty > MaxQuantity {
		return c, fmt.Errorf("%w: quantity %d", ErrInvalidItem, qty)
	}
	if qty == 0 {
		return Remove(c, k)
	}
	i := c.index(k)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrItemNotFound, k)
	}
	out := clone(c)
	out.Items[i].Quantity = qty
	return withTotal(c, out)
}

// Total is Σ unitPrice*quantity. It fails with ErrInvalidItem when a
// subtotal or the sum does not fit in an int64.
func Total(items []LineItem) (int64, error) {
	var sum int64
	for _, it := range items {
		next, ok := addSubtotal(sum, it)
		if !ok {
			return 0, fmt.Errorf("%w: total overflows at %s", ErrInvalidItem, it.Key())
		}
		sum = next
	}
	return sum, nil
}

// addSubtotal returns sum + it.Subtotal(), or false when the item is
// negative or the result overflows.
func addSubtotal(sum int64, it LineItem) (int64, bool) {
	if it.UnitPrice < 0 || it.Quantity < 0 {
		return 0, false
	}
	q := int64(it.Quantity)
	if q != 0 && it.UnitPrice > math.MaxInt64/q {
		return 0, false
	}
	sub := it.UnitPrice * q
	if sum > math.MaxInt64-sub {
		return 0, false
	}
	return sum + sub, true
}

// withTotal recomputes next's total, falling back to prev when it
// overflows.
func withTotal(prev, next Cart) (Cart, error) {
	total, err := Total(next.Items)
	if err != nil {
		return prev, err
	}
	next.Total = total
	return next, nil
}

// ItemCount is Σ quantity, used for the cart badge.
func ItemCount(c Cart) int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// normalize rebuilds a decoded cart so the invariants hold again: items
// below quantity 1 are dropped, duplicate keys are folded up to
// MaxQuantity, and an item that would overflow the total is dropped.
func normalize(c Cart) Cart {
	out := Empty()
	for _, it := range c.Items {
		if it.Quantity < 1 || it.ID == "" || it.UnitPrice < 0 {
			continue
		}
		it.Quantity = min(it.Quantity, MaxQuantity)
		if i := out.index(it.Key()); i >= 0 {
			folded := out.Items[i]
			folded.Quantity = min(folded.Quantity+it.Quantity, MaxQuantity)
			if total, ok := addSubtotal(out.Total-out.Items[i].Subtotal(), folded); ok {
				out.Items[i], out.Total = folded, total
			}
			continue
		}
		if total, ok := addSubtotal(out.Total, it); ok {
			out.Items = append(out.Items, it)
			out.Total = total
		}
	}
	return out
}

func (c Cart) index(k Key) int {
	for i, it := range c.Items {
		if it.Key() == k {
			return i
		}
	}
	return -1
}

func clone(c Cart) Cart {
	items := make([]LineItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}
}
