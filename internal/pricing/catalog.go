package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownPizzaType is returned when a pizza name does not match the catalog.
var ErrUnknownPizzaType = errors.New("unknown pizza type")

// PizzaType identifies an item on the menu.
type PizzaType int

const (
	Pepperoni PizzaType = iota + 1
	BrieChickenAndMushroom
	MightyVeg
)

var pizzaTypes = []PizzaType{Pepperoni, BrieChickenAndMushroom, MightyVeg}

// PizzaTypes returns every catalog entry in menu order.
func PizzaTypes() []PizzaType {
	out := make([]PizzaType, len(pizzaTypes))
	copy(out, pizzaTypes)
	return out
}

// UnitPrice returns the price of a single pizza before any discount.
func UnitPrice(p PizzaType) decimal.Decimal {
	switch p {
	case Pepperoni:
		return decimal.NewFromInt(10)
	case BrieChickenAndMushroom:
		return decimal.NewFromInt(15)
	case MightyVeg:
		return decimal.NewFromInt(12)
	}
	panic(fmt.Sprintf("pricing: no unit price for pizza type %d", int(p)))
}

// Label is the human readable name printed on receipts.
func (p PizzaType) Label() string {
	switch p {
	case Pepperoni:
		return "Pepperoni"
	case BrieChickenAndMushroom:
		return "Brie, Chicken and Mushroom"
	case MightyVeg:
		return "Mighty Veg"
	}
	panic(fmt.Sprintf("pricing: no label for pizza type %d", int(p)))
}

// Slug is the identifier used on the wire.
func (p PizzaType) Slug() string {
	switch p {
	case Pepperoni:
		return "pepperoni"
	case BrieChickenAndMushroom:
		return "brie-chicken-and-mushroom"
	case MightyVeg:
		return "mighty-veg"
	}
	panic(fmt.Sprintf("pricing: no slug for pizza type %d", int(p)))
}

func (p PizzaType) String() string {
	return p.Slug()
}

// ParsePizzaType resolves a slug such as "mighty-veg" (case-insensitive).
func ParsePizzaType(value string) (PizzaType, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, p := range pizzaTypes {
		if p.Slug() == needle {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPizzaType, value)
}
