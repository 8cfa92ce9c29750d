package model

import (
	"strconv"

	"github.com/Makepad-fr/shopfront/internal/money"
)

// Product is a catalog entry as the storefront API returns it.
// Price arrives either as a number or as a formatted string.
type Product struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Price       money.Amount `json:"price"`
	Image       string       `json:"image"`
	CategoryID  int          `json:"category_id"`
	Description string       `json:"description,omitempty"`
}

// Key is the product id in the string form cart line items use.
func (p Product) Key() string { return strconv.Itoa(p.ID) }

// User is the account returned on sign-in.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
