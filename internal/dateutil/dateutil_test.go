package dateutil

import (
	"errors"
	"testing"
	"time"
)

// Reference date: Friday, January 10, 2025
var friday = time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20", friday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expectedStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		expectedEnd := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)
		if !dr.Start.Equal(expectedStart) {
			t.Errorf("got start %v, want %v", dr.Start, expectedStart)
		}
		if !dr.End.Equal(expectedEnd) {
			t.Errorf("got end %v, want %v", dr.End, expectedEnd)
		}
		if dr.Days() != 6 {
			t.Errorf("got %d days, want 6", dr.Days())
		}
	})

	t.Run("same start and end date covers one day", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-15", friday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := dr.End.Sub(dr.Start); got != 24*time.Hour {
			t.Errorf("expected a 24h window, got %v", got)
		}
	})

	t.Run("empty start defaults to today", func(t *testing.T) {
		dr, err := NewDateRange("", "", friday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		if !dr.Start.Equal(today) {
			t.Errorf("got start %v, want %v", dr.Start, today)
		}
		if !dr.End.Equal(today.AddDate(0, 0, 1)) {
			t.Errorf("got end %v, want %v", dr.End, today.AddDate(0, 0, 1))
		}
	})

	t.Run("relative keywords", func(t *testing.T) {
		dr, err := NewDateRange("yesterday", "tomorrow", friday)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dr.Days() != 3 {
			t.Errorf("got %d days, want 3", dr.Days())
		}
	})

	t.Run("location is preserved", func(t *testing.T) {
		loc := time.FixedZone("UTC-5", -5*3600)
		dr, err := NewDateRange("2025-01-15", "", friday.In(loc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)
		if !dr.Start.Equal(want) {
			t.Errorf("got start %v, want %v", dr.Start, want)
		}
	})
}

func TestNewDateRange_Errors(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   error
	}{
		{
			name:      "invalid start date format",
			startDate: "01-15-2025",
			endDate:   "",
			wantErr:   ErrInvalidDateFormat,
		},
		{
			name:      "invalid end date format",
			startDate: "2025-01-15",
			endDate:   "01-20-2025",
			wantErr:   ErrInvalidDateFormat,
		},
		{
			name:      "end date before start date",
			startDate: "2025-01-20",
			endDate:   "2025-01-15",
			wantErr:   ErrEndDateBeforeStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.startDate, tt.endDate, friday)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		clock   string
		want    time.Time
		wantErr bool
	}{
		{"09:30", time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"00:00", day, false},
		{"23:59", time.Date(2025, 1, 15, 23, 59, 0, 0, time.UTC), false},
		{" 14:05 ", time.Date(2025, 1, 15, 14, 5, 0, 0, time.UTC), false},
		{"24:00", time.Time{}, true},
		{"9am", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, err := At(day, tt.clock)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Errorf("At(%q) error = %v, want ErrInvalidTimeFormat", tt.clock, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("At(%q) unexpected error: %v", tt.clock, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("At(%q) = %v, want %v", tt.clock, got, tt.want)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(friday)
	if !start.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestDayRange_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2025-03-09 is a 23 hour day in New York.
	start, end := DayRange(time.Date(2025, 3, 9, 12, 0, 0, 0, loc))
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("DST day length = %v, want 23h", got)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "Monday input returns same Monday",
			input:      time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), // Monday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Wednesday returns previous Monday",
			input:      time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC), // Wednesday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Sunday returns previous Monday and same Sunday",
			input:      time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC), // Sunday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "week spanning a month boundary",
			input:      time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), // Wednesday
			wantMonday: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMonday, gotSunday := WeekRange(tt.input)
			if !gotMonday.Equal(tt.wantMonday) {
				t.Errorf("monday: got %v, want %v", gotMonday, tt.wantMonday)
			}
			if !gotSunday.Equal(tt.wantSunday) {
				t.Errorf("sunday: got %v, want %v", gotSunday, tt.wantSunday)
			}
		})
	}
}

func TestWeekWindow(t *testing.T) {
	w := WeekWindow(friday)
	if !w.Start.Equal(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", w.End)
	}
	if w.Days() != 7 {
		t.Errorf("days = %d, want 7", w.Days())
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseRelativeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty returns today", "", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"today keyword", "today", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"TODAY uppercase", "TODAY", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", "tomorrow", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{"yesterday", "yesterday", time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"next-week", "next-week", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"monday is next monday", "monday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"same weekday is a week out", "friday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{"saturday", "Saturday", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{"next-tuesday", "next-tuesday", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)},
		{"absolute future", "2025-02-01", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"absolute past is allowed", "2024-12-24", time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)},
		{"whitespace", "  tomorrow  ", time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, friday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	inputs := []string{"someday", "next-funday", "2025-13-01", "15/01/2025", "next-"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeDate(input, friday)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseRelativeDate(%q) error = %v, want ErrInvalidDateFormat", input, err)
			}
		})
	}
}
