package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pizza-pricing/internal/clock"
	"github.com/noah-isme/pizza-pricing/internal/pricing"
)

func TestSystemUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	now := clock.System{Location: loc}.Now()
	require.Equal(t, loc, now.Location())
	require.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestSystemDefaultsToLocal(t *testing.T) {
	require.Equal(t, time.Local, clock.System{}.Now().Location())
}

func TestFixedDrivesOrderDay(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)
	order := pricing.NewOrder(clock.Fixed(sunday))
	require.Equal(t, pricing.Sunday, order.Day())
}

func TestLocationChangesWeekday(t *testing.T) {
	// Sunday 23:30 UTC is already Monday east of UTC+1.
	instant := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)
	east := time.FixedZone("UTC+2", 2*60*60)
	order := pricing.NewOrder(clock.Func(func() time.Time { return instant.In(east) }))
	require.Equal(t, pricing.Monday, order.Day())
}
