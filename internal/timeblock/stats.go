package timeblock

// Stats holds aggregate figures over a set of blocks.
// TotalHours and AverageHours are zero when Count is zero.
type Stats struct {
	Count        int
	TotalHours   float64
	AverageHours float64
}

// NewStats builds Stats from a count and the summed length in hours.
func NewStats(count int, hours float64) Stats {
	if count <= 0 {
		return Stats{}
	}
	return Stats{
		Count:        count,
		TotalHours:   hours,
		AverageHours: hours / float64(count),
	}
}

// Average returns the average block length in hours, or false when there
// are no blocks.
func (s Stats) Average() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}
	return s.AverageHours, true
}

// Summarize computes Stats over an in-memory collection of blocks.
func Summarize(blocks []*TimeBlock) Stats {
	var total float64
	for _, b := range blocks {
		total += b.Hours()
	}
	return NewStats(len(blocks), total)
}
