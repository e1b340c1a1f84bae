package timeblock

import (
	"strconv"
	"strings"
	"time"
)

// QuickAddDuration is the fixed length of a quick-added block.
const QuickAddDuration = time.Hour

// ParseClock parses a bare "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, 0, ErrInvalidClock
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidClock
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidClock
	}
	return hour, minute, nil
}

// ResolveQuickAdd places hour:minute on now's date in now's location. When
// that instant is already past, the date moves forward by one calendar day.
// A single shift is enough: today's hour:minute is at most 24h behind now,
// so tomorrow's is never behind it.
func ResolveQuickAdd(hour, minute int, now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if start.Before(now) {
		start = start.AddDate(0, 0, 1)
	}
	return start, start.Add(QuickAddDuration)
}
