package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a line is added with a negative quantity
// or one that would overflow the order's pizza count.
var ErrInvalidQuantity = errors.New("invalid quantity")

// BulkThreshold is the number of pizzas an order must exceed to earn the bulk bonus.
const BulkThreshold = 5

var bulkMultiplier = decimal.New(95, -2)

// Clock supplies the current time used to pick the pricing day.
type Clock interface {
	Now() time.Time
}

// Line records a single Add call together with what it was charged.
type Line struct {
	PizzaType PizzaType
	Quantity  int
	Day       Weekday
	Cost      decimal.Decimal
}

// Order accumulates pizzas and their cost. It is not safe for concurrent use.
type Order struct {
	runningTotal decimal.Decimal
	currentDay   Weekday
	totalPizzas  int
	lines        []Line
}

// NewOrder creates an order priced for the clock's current weekday.
func NewOrder(clock Clock) *Order {
	return &Order{
		runningTotal: decimal.Zero,
		currentDay:   WeekdayOf(clock.Now()),
	}
}

// NewDatelessOrder creates an order on a neutral day, so every pizza is charged at its unit price.
func NewDatelessOrder() *Order {
	return &Order{
		runningTotal: decimal.Zero,
		currentDay:   Tuesday,
	}
}

// SetDay changes the day used to price pizzas added from now on.
func (o *Order) SetDay(d Weekday) {
	o.currentDay = d
}

// Day returns the day currently used for pricing.
func (o *Order) Day() Weekday {
	return o.currentDay
}

// LineCost prices quantity pizzas of one type under the order's current day.
func (o *Order) LineCost(p PizzaType, quantity int) decimal.Decimal {
	return LineCost(o.currentDay, p, quantity)
}

// LineCost prices quantity pizzas of one type on the given day.
// Brie, Chicken and Mushroom keeps its full price on Mondays.
func LineCost(day Weekday, p PizzaType, quantity int) decimal.Decimal {
	multiplier := DailyMultiplier(day)
	if day == Monday && p == BrieChickenAndMushroom {
		multiplier = decimal.NewFromInt(1)
	}
	return UnitPrice(p).Mul(multiplier).Mul(decimal.NewFromInt(int64(quantity)))
}

// Add charges quantity pizzas of type p at the current day's price.
func (o *Order) Add(p PizzaType, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("add %s: %w: %d is negative", p, ErrInvalidQuantity, quantity)
	}
	if quantity > math.MaxInt-o.totalPizzas {
		return fmt.Errorf("add %s: %w: %d overflows the pizza count", p, ErrInvalidQuantity, quantity)
	}
	cost := o.LineCost(p, quantity)
	o.lines = append(o.lines, Line{
		PizzaType: p,
		Quantity:  quantity,
		Day:       o.currentDay,
		Cost:      cost,
	})
	o.runningTotal = o.runningTotal.Add(cost)
	o.totalPizzas += quantity
	return nil
}

// BonusMultiplier returns the bulk discount factor for the pizzas added so far.
func (o *Order) BonusMultiplier() decimal.Decimal {
	if o.totalPizzas > BulkThreshold {
		return bulkMultiplier
	}
	return decimal.NewFromInt(1)
}

// RunningTotal is the sum of line costs before the bulk bonus.
func (o *Order) RunningTotal() decimal.Decimal {
	return o.runningTotal
}

// TotalPizzas is the number of pizzas added across all lines.
func (o *Order) TotalPizzas() int {
	return o.totalPizzas
}

// Total returns the amount payable with the bulk bonus applied.
func (o *Order) Total() decimal.Decimal {
	return o.runningTotal.Mul(o.BonusMultiplier())
}

// Lines returns a copy of the lines in the order they were added.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}
