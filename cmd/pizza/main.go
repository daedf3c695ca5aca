package main

import (
	"fmt"
	"io"
	"os"

	"github.com/noah-isme/pizza-pricing/internal/clock"
	"github.com/noah-isme/pizza-pricing/internal/config"
	"github.com/noah-isme/pizza-pricing/internal/obs"
	"github.com/noah-isme/pizza-pricing/internal/pricing"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, nil))
}

// run prints the current weekday to stdout. A nil clock reads the system time in PIZZA_TIMEZONE.
func run(stdout, stderr io.Writer, c pricing.Clock) int {
	cfg, err := config.LoadCLI()
	if err != nil {
		logger := obs.NewLoggerTo(stderr, "console", "error")
		logger.Error().Err(err).Msg("load config")
		return 1
	}
	logger := obs.NewLoggerTo(stderr, cfg.LogFormat, cfg.LogLevel)

	if c == nil {
		c = clock.System{Location: cfg.Location}
	}
	now := c.Now()
	day := pricing.WeekdayOf(now)
	logger.Debug().Str("tz", now.Location().String()).Str("day", day.String()).Msg("resolved weekday")

	if _, err := fmt.Fprintln(stdout, day); err != nil {
		logger.Error().Err(err).Msg("write weekday")
		return 1
	}
	return 0
}
