package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/pizza-pricing/internal/obs"
	"github.com/noah-isme/pizza-pricing/internal/pricing"
)

// ErrTooManyItems is returned when a quote request exceeds the configured item limit.
var ErrTooManyItems = errors.New("too many items in quote")

// Item is one requested addition to the quoted order.
type Item struct {
	Pizza    pricing.PizzaType
	Quantity int
}

// Request describes an order to price. A nil Day prices the order for today.
type Request struct {
	Day   *pricing.Weekday
	Items []Item
}

// Line is a priced line in a quote.
type Line struct {
	Pizza    string          `json:"pizza"`
	Label    string          `json:"label"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// Quote is the priced result of a Request.
type Quote struct {
	ID              uuid.UUID       `json:"id"`
	Day             string          `json:"day"`
	Lines           []Line          `json:"lines"`
	Receipt         []string        `json:"receipt"`
	TotalPizzas     int             `json:"totalPizzas"`
	RunningTotal    decimal.Decimal `json:"runningTotal"`
	BonusMultiplier decimal.Decimal `json:"bonusMultiplier"`
	Total           decimal.Decimal `json:"total"`
}

// MenuItem is a catalog entry with the price that applies on the menu's day.
type MenuItem struct {
	Pizza      string          `json:"pizza"`
	Label      string          `json:"label"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	PriceToday decimal.Decimal `json:"priceToday"`
}

// Menu lists the catalog for a single day.
type Menu struct {
	Day        string          `json:"day"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Items      []MenuItem      `json:"items"`
}

// Service prices orders without keeping any state between calls.
type Service struct {
	Clock    pricing.Clock
	Metrics  *obs.PricingMetrics
	Logger   zerolog.Logger
	MaxItems int
	NewID    func() uuid.UUID
}

// Quote builds a fresh order from req and returns its priced breakdown.
func (s *Service) Quote(ctx context.Context, req Request) (Quote, error) {
	_, span := otel.Tracer("quote").Start(ctx, "quote.price")
	defer span.End()

	order := s.newOrder(req.Day)
	day := order.Day().String()
	span.SetAttributes(attribute.String("pizza.day", day), attribute.Int("pizza.items", len(req.Items)))

	if s.MaxItems > 0 && len(req.Items) > s.MaxItems {
		s.observeFailure(day, "too_many_items")
		span.SetStatus(codes.Error, ErrTooManyItems.Error())
		return Quote{}, fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(req.Items), s.MaxItems)
	}
	for i, item := range req.Items {
		if err := order.Add(item.Pizza, item.Quantity); err != nil {
			s.observeFailure(day, "invalid_quantity")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Quote{}, fmt.Errorf("item %d: %w", i, err)
		}
	}

	q := Quote{
		ID:              s.newID(),
		Day:             day,
		Lines:           make([]Line, 0, len(req.Items)),
		Receipt:         order.Receipt(),
		TotalPizzas:     order.TotalPizzas(),
		RunningTotal:    order.RunningTotal(),
		BonusMultiplier: order.BonusMultiplier(),
		Total:           order.Total(),
	}
	for _, line := range order.Lines() {
		q.Lines = append(q.Lines, Line{
			Pizza:    line.PizzaType.Slug(),
			Label:    line.PizzaType.Label(),
			Quantity: line.Quantity,
			Cost:     line.Cost,
		})
	}
	s.observeSuccess(q, order.Lines())
	span.SetAttributes(attribute.String("pizza.total", q.Total.String()))

	s.Logger.Debug().
		Str("quote_id", q.ID.String()).
		Str("day", q.Day).
		Int("pizzas", q.TotalPizzas).
		Str("total", q.Total.String()).
		Msg("quote priced")
	return q, nil
}

// Menu lists every pizza with the price charged for one unit on day, or today when day is nil.
func (s *Service) Menu(day *pricing.Weekday) Menu {
	d := s.newOrder(day).Day()
	menu := Menu{
		Day:        d.String(),
		Multiplier: pricing.DailyMultiplier(d),
		Items:      make([]MenuItem, 0, len(pricing.PizzaTypes())),
	}
	for _, p := range pricing.PizzaTypes() {
		menu.Items = append(menu.Items, MenuItem{
			Pizza:      p.Slug(),
			Label:      p.Label(),
			UnitPrice:  pricing.UnitPrice(p),
			PriceToday: pricing.LineCost(d, p, 1),
		})
	}
	return menu
}

func (s *Service) newOrder(day *pricing.Weekday) *pricing.Order {
	if day != nil {
		order := pricing.NewDatelessOrder()
		order.SetDay(*day)
		return order
	}
	if s.Clock == nil {
		return pricing.NewDatelessOrder()
	}
	return pricing.NewOrder(s.Clock)
}

func (s *Service) newID() uuid.UUID {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New()
}

func (s *Service) observeFailure(day, result string) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.QuotesTotal.WithLabelValues(day, result).Inc()
}

func (s *Service) observeSuccess(q Quote, lines []pricing.Line) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.QuotesTotal.WithLabelValues(q.Day, "ok").Inc()
	for _, line := range lines {
		s.Metrics.QuotedPizzas.WithLabelValues(line.PizzaType.Slug()).Add(float64(line.Quantity))
	}
	total, _ := q.Total.Float64()
	s.Metrics.QuoteAmount.Observe(total)
	if q.TotalPizzas > pricing.BulkThreshold {
		s.Metrics.BulkBonusApplied.Inc()
	}
}

// Check prices a reference order and fails if the result drifts from the catalog.
func (s *Service) Check(context.Context) error {
	order := pricing.NewDatelessOrder()
	if err := order.Add(pricing.Pepperoni, 2); err != nil {
		return err
	}
	if want := decimal.NewFromInt(20); !order.Total().Equal(want) {
		return fmt.Errorf("reference order priced at %s, want %s", order.Total(), want)
	}
	return nil
}
