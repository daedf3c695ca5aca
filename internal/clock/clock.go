package clock

import "time"

// System reads the wall clock in Location. A nil Location means time.Local.
type System struct {
	Location *time.Location
}

// Now returns the current time in the configured location.
func (s System) Now() time.Time {
	now := time.Now()
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

// Fixed always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Func adapts a plain function to a clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }
