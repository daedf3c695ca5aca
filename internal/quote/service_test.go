package quote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pizza-pricing/internal/clock"
	"github.com/noah-isme/pizza-pricing/internal/obs"
	"github.com/noah-isme/pizza-pricing/internal/pricing"
	"github.com/noah-isme/pizza-pricing/internal/quote"
)

// 2024-01-01 was a Monday.
var monday = time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

var fixedID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func newService(t *testing.T) (*quote.Service, *obs.PricingMetrics) {
	t.Helper()
	metrics := obs.NewPricingMetrics("pizza", prometheus.NewRegistry())
	return &quote.Service{
		Clock:    clock.Fixed(monday),
		Metrics:  metrics,
		Logger:   zerolog.Nop(),
		MaxItems: 3,
		NewID:    func() uuid.UUID { return fixedID },
	}, metrics
}

func dayPtr(d pricing.Weekday) *pricing.Weekday { return &d }

func TestQuoteUsesClockDay(t *testing.T) {
	svc, metrics := newService(t)
	q, err := svc.Quote(context.Background(), quote.Request{Items: []quote.Item{
		{Pizza: pricing.Pepperoni, Quantity: 2},
		{Pizza: pricing.BrieChickenAndMushroom, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Equal(t, fixedID, q.ID)
	require.Equal(t, "Mon", q.Day)
	require.Equal(t, 3, q.TotalPizzas)
	require.Equal(t, "33", q.Total.String())
	require.Equal(t, []string{"2 Pepperoni: $18", "1 Brie, Chicken and Mushroom: $15"}, q.Receipt)
	require.Len(t, q.Lines, 2)
	require.Equal(t, "pepperoni", q.Lines[0].Pizza)

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.QuotesTotal.WithLabelValues("Mon", "ok")))
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.QuotedPizzas.WithLabelValues("pepperoni")))
	require.Zero(t, testutil.ToFloat64(metrics.BulkBonusApplied))
}

func TestQuoteExplicitDayAndBulkBonus(t *testing.T) {
	svc, metrics := newService(t)
	q, err := svc.Quote(context.Background(), quote.Request{
		Day:   dayPtr(pricing.Sunday),
		Items: []quote.Item{{Pizza: pricing.Pepperoni, Quantity: 6}},
	})
	require.NoError(t, err)
	require.Equal(t, "Sun", q.Day)
	require.Equal(t, "63", q.RunningTotal.String())
	require.Equal(t, "0.95", q.BonusMultiplier.String())
	require.Equal(t, "59.85", q.Total.String())
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.BulkBonusApplied))
}

func TestQuoteRejectsNegativeQuantity(t *testing.T) {
	svc, metrics := newService(t)
	_, err := svc.Quote(context.Background(), quote.Request{Items: []quote.Item{{Pizza: pricing.MightyVeg, Quantity: -2}}})
	require.Error(t, err)
	require.True(t, errors.Is(err, pricing.ErrInvalidQuantity))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.QuotesTotal.WithLabelValues("Mon", "invalid_quantity")))
}

func TestQuoteRejectsTooManyItems(t *testing.T) {
	svc, _ := newService(t)
	items := make([]quote.Item, 4)
	for i := range items {
		items[i] = quote.Item{Pizza: pricing.Pepperoni, Quantity: 1}
	}
	_, err := svc.Quote(context.Background(), quote.Request{Items: items})
	require.True(t, errors.Is(err, quote.ErrTooManyItems))
}

func TestMenuAppliesMondayExemption(t *testing.T) {
	svc, _ := newService(t)
	menu := svc.Menu(nil)
	require.Equal(t, "Mon", menu.Day)
	require.Equal(t, "0.9", menu.Multiplier.String())

	prices := map[string]string{}
	for _, item := range menu.Items {
		prices[item.Pizza] = item.PriceToday.String()
	}
	require.Equal(t, map[string]string{
		"pepperoni":                 "9",
		"brie-chicken-and-mushroom": "15",
		"mighty-veg":                "10.8",
	}, prices)
}

func TestServiceWithoutClockIsDateless(t *testing.T) {
	svc := &quote.Service{}
	require.Equal(t, "Tue", svc.Menu(nil).Day)
}

func TestCheck(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Check(context.Background()))
}
