// Package catalog holds the product-detail options offered on the details
// screen and turns a selection into a cart line item.
package catalog

import (
	"fmt"

	"github.com/Makepad-fr/shopfront/internal/cart"
	"github.com/Makepad-fr/shopfront/internal/model"
)

// Configuration is a storage option with its own price.
type Configuration struct {
	Storage string
	Price   int64
}

// Color is a finish option; Hex is used for the swatch.
type Color struct {
	Name string
	Hex  string
}

var configurations = []Configuration{
	{Storage: "1TB", Price: 52990000},
	{Storage: "512GB", Price: 45990000},
	{Storage: "256GB", Price: 41990000},
}

var colors = []Color{
	{Name: "Natural Titanium", Hex: "#E2E4E1"},
	{Name: "Blue Titanium", Hex: "#4B4F58"},
	{Name: "Black Titanium", Hex: "#4A4846"},
	{Name: "White Titanium", Hex: "#F5F5F0"},
}

func Configurations() []Configuration {
	return append([]Configuration(nil), configurations...)
}

func Colors() []Color {
	return append([]Color(nil), colors...)
}

// DefaultConfiguration is 256GB.
func DefaultConfiguration() Configuration { return configurations[2] }

// DefaultColor is Natural Titanium.
func DefaultColor() Color { return colors[0] }

// ConfigurationFor looks a configuration up by storage label.
func ConfigurationFor(storage string) (Configuration, error) {
	for _, c := range configurations {
		if c.Storage == storage {
			return c, nil
		}
	}
	return Configuration{}, fmt.Errorf("unknown storage %q", storage)
}

// ColorFor looks a color up by name.
func ColorFor(name string) (Color, error) {
	for _, c := range colors {
		if c.Name == name {
			return c, nil
		}
	}
	return Color{}, fmt.Errorf("unknown color %q", name)
}

// Related drops the product being viewed from a category listing.
func Related(products []model.Product, currentID int) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.ID != currentID {
			out = append(out, p)
		}
	}
	return out
}

// Candidate builds the line item for the current selection. The price is
// the selected configuration's, not the listing price.
func Candidate(p model.Product, color Color, cfg Configuration, qty int) cart.LineItem {
	return cart.LineItem{
		ID:        p.Key(),
		Title:     p.Name,
		UnitPrice: cfg.Price,
		Image:     p.Image,
		Quantity:  qty,
		Variant:   cart.Variant{Color: color.Name, Storage: cfg.Storage},
	}
}
