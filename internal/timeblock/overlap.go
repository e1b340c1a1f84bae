package timeblock

import "time"

// Overlaps reports whether an existing interval [s, e) intersects the
// candidate [start, end). It is the union of three cases:
//
//   - the existing block starts at or before start and ends after it
//   - the existing block starts before end and ends at or after it
//   - the existing block lies within [start, end]
//
// For non-empty intervals this is the half-open test s < end && start < e,
// so intervals that only touch do not overlap.
func Overlaps(s, e, start, end time.Time) bool {
	switch {
	case !s.After(start) && e.After(start):
		return true
	case s.Before(end) && !e.Before(end):
		return true
	case !s.Before(start) && !e.After(end):
		return true
	default:
		return false
	}
}

// OverlapsWith reports whether the block overlaps the candidate interval.
func (b *TimeBlock) OverlapsWith(start, end time.Time) bool {
	if b == nil {
		return false
	}
	return Overlaps(b.Start, b.End, start, end)
}

// ContainedIn reports whether the block lies entirely inside [rangeStart, rangeEnd].
func (b *TimeBlock) ContainedIn(rangeStart, rangeEnd time.Time) bool {
	return !b.Start.Before(rangeStart) && !b.End.After(rangeEnd)
}

// FilterOverlapping returns the blocks that overlap [start, end), skipping
// excludeID when it is non-zero. Order is preserved.
func FilterOverlapping(blocks []*TimeBlock, start, end time.Time, excludeID int64) []*TimeBlock {
	var out []*TimeBlock
	for _, b := range blocks {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if b.OverlapsWith(start, end) {
			out = append(out, b)
		}
	}
	return out
}
