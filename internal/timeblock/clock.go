package timeblock

import "time"

// Clock supplies the current instant. The location of the returned time is
// the wall-clock zone used to resolve bare clock times.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
