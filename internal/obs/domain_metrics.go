package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics counts quotes produced by the pricing API.
type PricingMetrics struct {
	// QuotesTotal counts quote requests by pricing day and outcome.
	QuotesTotal *prometheus.CounterVec
	// QuotedPizzas counts pizzas priced, by pizza type.
	QuotedPizzas *prometheus.CounterVec
	// QuoteAmount records the payable total of successful quotes.
	QuoteAmount prometheus.Histogram
	// BulkBonusApplied counts quotes that crossed the bulk threshold.
	BulkBonusApplied prometheus.Counter
}

// NewPricingMetrics initialises and registers pricing collectors on reg (default registerer when nil).
func NewPricingMetrics(namespace string, reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &PricingMetrics{
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Count of quote requests by pricing day and result.",
		}, []string{"day", "result"}),
		QuotedPizzas: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quoted_pizzas_total",
			Help:      "Number of pizzas priced in successful quotes.",
		}, []string{"pizza"}),
		QuoteAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_amount",
			Help:      "Distribution of quoted order totals.",
			Buckets:   []float64{10, 20, 50, 100, 200, 500, 1000},
		}),
		BulkBonusApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_bulk_bonus_total",
			Help:      "Number of quotes that earned the bulk order bonus.",
		}),
	}
	m.QuotesTotal = register(reg, m.QuotesTotal)
	m.QuotedPizzas = register(reg, m.QuotedPizzas)
	m.QuoteAmount = register(reg, m.QuoteAmount)
	m.BulkBonusApplied = register(reg, m.BulkBonusApplied)
	return m
}
