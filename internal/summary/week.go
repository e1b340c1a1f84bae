// Package summary builds week summaries of time blocks.
package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/javiermolinar/focusflow/internal/dateutil"
	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// RangeFinder returns the blocks of an owner contained in a range.
// *timeblock.Manager satisfies it.
type RangeFinder interface {
	FindByOwnerAndRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*timeblock.TimeBlock, error)
}

// Day groups the blocks starting on one calendar day.
type Day struct {
	Date   time.Time
	Blocks []*timeblock.TimeBlock
	Stats  timeblock.Stats
}

// Conflict is a pair of blocks whose intervals intersect.
type Conflict struct {
	First  *timeblock.TimeBlock
	Second *timeblock.TimeBlock
}

// WeekSummary holds the blocks of an ISO week and their aggregates.
// Start is Monday midnight and End the following Monday midnight.
type WeekSummary struct {
	Start     time.Time
	End       time.Time
	Days      [7]Day
	Blocks    []*timeblock.TimeBlock
	Stats     timeblock.Stats
	Conflicts []Conflict
}

// SummarizeWeek builds the summary of the week containing weekOf from
// blocks. Blocks not contained in the week are ignored. Days are computed
// in weekOf's location.
func SummarizeWeek(weekOf time.Time, blocks []*timeblock.TimeBlock) *WeekSummary {
	window := dateutil.WeekWindow(weekOf)
	s := &WeekSummary{Start: window.Start, End: window.End}

	for i := range s.Days {
		s.Days[i].Date = window.Start.AddDate(0, 0, i)
	}

	for _, b := range blocks {
		if !b.ContainedIn(window.Start, window.End) {
			continue
		}
		s.Blocks = append(s.Blocks, b)
	}
	sort.SliceStable(s.Blocks, func(i, j int) bool {
		return s.Blocks[i].Start.Before(s.Blocks[j].Start)
	})

	for _, b := range s.Blocks {
		idx := dayIndex(s.Start, b.Start.In(weekOf.Location()))
		s.Days[idx].Blocks = append(s.Days[idx].Blocks, b)
	}
	for i := range s.Days {
		s.Days[i].Stats = timeblock.Summarize(s.Days[i].Blocks)
	}

	s.Stats = timeblock.Summarize(s.Blocks)
	s.Conflicts = FindConflicts(s.Blocks)
	return s
}

// BuildWeekSummary loads the owner's blocks for the week containing weekOf.
func BuildWeekSummary(ctx context.Context, finder RangeFinder, ownerID int64, weekOf time.Time) (*WeekSummary, error) {
	window := dateutil.WeekWindow(weekOf)
	blocks, err := finder.FindByOwnerAndRange(ctx, ownerID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("fetching time blocks: %w", err)
	}
	return SummarizeWeek(weekOf, blocks), nil
}

// BusiestDay returns the day with the most scheduled hours. ok is false
// when the week is empty.
func (s *WeekSummary) BusiestDay() (day Day, ok bool) {
	for _, d := range s.Days {
		if d.Stats.Count == 0 {
			continue
		}
		if !ok || d.Stats.TotalHours > day.Stats.TotalHours {
			day, ok = d, true
		}
	}
	return day, ok
}

// dayIndex returns the 0-based weekday offset of t from monday, clamped to
// the week.
func dayIndex(monday, t time.Time) int {
	day := dateutil.TruncateToDay(t)
	for i := 0; i < 7; i++ {
		if monday.AddDate(0, 0, i).Equal(day) {
			return i
		}
	}
	if day.Before(monday) {
		return 0
	}
	return 6
}

// FindConflicts returns every intersecting pair of blocks, earlier start
// first in each pair.
func FindConflicts(blocks []*timeblock.TimeBlock) []Conflict {
	sorted := make([]*timeblock.TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var conflicts []Conflict
	for i, a := range sorted {
		// Later blocks starting at or after a ends cannot overlap it.
		j := i + 1
		for j < len(sorted) && sorted[j].Start.Before(a.End) {
			j++
		}
		for _, b := range timeblock.FilterOverlapping(sorted[i+1:j], a.Start, a.End, a.ID) {
			conflicts = append(conflicts, Conflict{First: a, Second: b})
		}
	}
	return conflicts
}
