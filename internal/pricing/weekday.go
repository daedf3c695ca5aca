package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownWeekday is returned when a day name cannot be parsed.
var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekday is a day of the week, Monday first.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the seven days starting from Monday.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

// DailyMultiplier returns the price factor applied to every pizza on the given day.
func DailyMultiplier(d Weekday) decimal.Decimal {
	switch d {
	case Monday:
		return decimal.New(90, -2)
	case Tuesday, Wednesday, Thursday, Friday, Saturday:
		return decimal.NewFromInt(1)
	case Sunday:
		return decimal.New(105, -2)
	}
	panic(fmt.Sprintf("pricing: no multiplier for weekday %d", int(d)))
}

// WeekdayOf converts a timestamp into its weekday in the timestamp's location.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	case time.Sunday:
		return Sunday
	}
	panic(fmt.Sprintf("pricing: unexpected time.Weekday %d", int(t.Weekday())))
}

// String returns the three letter abbreviation, e.g. "Mon".
func (d Weekday) String() string {
	switch d {
	case Monday:
		return "Mon"
	case Tuesday:
		return "Tue"
	case Wednesday:
		return "Wed"
	case Thursday:
		return "Thu"
	case Friday:
		return "Fri"
	case Saturday:
		return "Sat"
	case Sunday:
		return "Sun"
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// ParseWeekday accepts abbreviated or full English day names in any case.
func ParseWeekday(value string) (Weekday, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, d := range weekdays {
		if needle == strings.ToLower(d.String()) || needle == strings.ToLower(d.time().String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, value)
}

func (d Weekday) time() time.Weekday {
	return time.Weekday(int(d) % 7)
}
