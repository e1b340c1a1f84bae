// Package scheduler finds free time between time blocks inside working hours.
package scheduler

import (
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// searchDays bounds how far ahead NextFree looks.
const searchDays = 14

// Scheduler knows the working days and hours free time is searched in.
type Scheduler struct {
	workdays map[time.Weekday]bool
	dayStart int // minutes since midnight
	dayEnd   int
}

// New creates a Scheduler. Workdays are lower- or mixed-case English day
// names; dayStart and dayEnd are "HH:MM" clocks already validated by config.
func New(workdays []string, dayStart, dayEnd string) *Scheduler {
	wd := make(map[time.Weekday]bool)
	for _, d := range workdays {
		for w := time.Sunday; w <= time.Saturday; w++ {
			if strings.EqualFold(strings.TrimSpace(d), w.String()) {
				wd[w] = true
			}
		}
	}
	return &Scheduler{
		workdays: wd,
		dayStart: parseClock(dayStart),
		dayEnd:   parseClock(dayEnd),
	}
}

// Slot is a free half-open interval [Start, End).
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsWorkday reports whether t falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	return s.workdays[t.Weekday()]
}

// WorkHours returns the working interval of the calendar day containing t,
// in t's location.
func (s *Scheduler) WorkHours(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, s.dayStart/60, s.dayStart%60, 0, 0, t.Location())
	end = time.Date(y, m, d, s.dayEnd/60, s.dayEnd%60, 0, 0, t.Location())
	return start, end
}

// FreeSlots returns the gaps of at least minLen between blocks inside the
// working hours of day. Non-workdays have no free slots.
func (s *Scheduler) FreeSlots(day time.Time, blocks []*timeblock.TimeBlock, minLen time.Duration) []Slot {
	if !s.IsWorkday(day) {
		return nil
	}
	workStart, workEnd := s.WorkHours(day)
	return gaps(workStart, workEnd, blocks, minLen)
}

// NextFree returns the earliest slot of length d that starts at or after now,
// rounded up to the next quarter hour, and lies inside working hours.
// It looks searchDays ahead and reports false when nothing fits.
func (s *Scheduler) NextFree(now time.Time, blocks []*timeblock.TimeBlock, d time.Duration) (Slot, bool) {
	earliest := roundUpTo15Min(now)
	for i := range searchDays {
		day := now.AddDate(0, 0, i)
		if !s.IsWorkday(day) {
			continue
		}
		workStart, workEnd := s.WorkHours(day)
		if !earliest.Before(workEnd) {
			continue
		}
		if workStart.Before(earliest) {
			workStart = earliest
		}
		if free := gaps(workStart, workEnd, blocks, d); len(free) > 0 {
			return Slot{Start: free[0].Start, End: free[0].Start.Add(d)}, true
		}
	}
	return Slot{}, false
}

// SearchWindow returns the interval NextFree may place a slot in, so
// callers can fetch the blocks that matter.
func (s *Scheduler) SearchWindow(now time.Time) (start, end time.Time) {
	_, end = s.WorkHours(now.AddDate(0, 0, searchDays-1))
	return now, end
}

func gaps(from, to time.Time, blocks []*timeblock.TimeBlock, minLen time.Duration) []Slot {
	sorted := slices.Clone(blocks)
	slices.SortFunc(sorted, func(a, b *timeblock.TimeBlock) int {
		return a.Start.Compare(b.Start)
	})

	var slots []Slot
	cursor := from
	for _, b := range sorted {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(to) {
			break
		}
		if b.Start.After(cursor) && b.Start.Sub(cursor) >= minLen {
			slots = append(slots, Slot{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if cursor.Before(to) && to.Sub(cursor) >= minLen {
		slots = append(slots, Slot{Start: cursor, End: to})
	}
	return slots
}

// roundUpTo15Min rounds a time up to the next 15-minute boundary.
func roundUpTo15Min(t time.Time) time.Time {
	minute := t.Minute()
	remainder := minute % 15
	if remainder == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Add(time.Duration(15-remainder) * time.Minute).Truncate(time.Minute)
}

// parseClock parses "HH:MM" to minutes since midnight.
func parseClock(s string) int {
	if len(s) < 5 {
		return 0
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m
}
