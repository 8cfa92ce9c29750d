package cart

import "errors"

var (
	// ErrInvalidItem rejects a candidate with an empty id, a negative price,
	// a quantity outside 1..MaxQuantity, or a total that would overflow.
	ErrInvalidItem = errors.New("invalid cart item")

	// ErrItemNotFound is returned when a key is not in the cart.
	ErrItemNotFound = errors.New("item not in cart")

	// ErrPersistenceFailed means the cart was computed but could not be
	// written; it may not survive a restart.
	ErrPersistenceFailed = errors.New("cart not persisted")
)
