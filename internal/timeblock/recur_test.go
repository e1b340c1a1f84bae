package timeblock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func TestExpandRecurrence(t *testing.T) {
	dtstart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name    string
		rule    string
		want    int
		wantErr bool
	}{
		{"daily count", "FREQ=DAILY;COUNT=5", 5, false},
		{"prefixed rule", "RRULE:FREQ=WEEKLY;COUNT=3", 3, false},
		{"weekdays", "FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=6", 6, false},
		{"unbounded is capped", "FREQ=DAILY", timeblock.MaxOccurrences, false},
		{"empty", "", 0, true},
		{"garbage", "FREQ=SOMETIMES", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			starts, err := timeblock.ExpandRecurrence(tt.rule, dtstart, timeblock.MaxOccurrences)
			if tt.wantErr {
				if !errors.Is(err, timeblock.ErrInvalidRecurrence) {
					t.Errorf("ExpandRecurrence(%q) error = %v, want ErrInvalidRecurrence", tt.rule, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandRecurrence(%q) unexpected error: %v", tt.rule, err)
			}
			if len(starts) != tt.want {
				t.Errorf("ExpandRecurrence(%q) = %d occurrences, want %d", tt.rule, len(starts), tt.want)
			}
			if !starts[0].Equal(dtstart) {
				t.Errorf("first occurrence = %v, want %v", starts[0], dtstart)
			}
		})
	}
}

func TestManager_CreateRecurring(t *testing.T) {
	var inserted []*timeblock.TimeBlock
	store := &timeblock.StubStore{
		InsertFunc: func(_ context.Context, b *timeblock.TimeBlock) (int64, error) {
			inserted = append(inserted, b)
			return int64(len(inserted)), nil
		},
	}
	m := newManager(store, timeblock.ConflictAllow)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	blocks, err := m.CreateRecurring(context.Background(), 1, timeblock.Fields{
		Title: "Standup",
		Start: start,
		End:   start.Add(15 * time.Minute),
	}, "FREQ=DAILY;COUNT=3")
	if err != nil {
		t.Fatalf("CreateRecurring() unexpected error: %v", err)
	}

	if len(blocks) != 3 {
		t.Fatalf("CreateRecurring() created %d blocks, want 3", len(blocks))
	}
	for i, b := range blocks {
		wantStart := start.AddDate(0, 0, i)
		if !b.Start.Equal(wantStart) || b.Duration() != 15*time.Minute {
			t.Errorf("block %d = %v (%v), want %v (15m)", i, b.Start, b.Duration(), wantStart)
		}
		if b.ID != int64(i+1) {
			t.Errorf("block %d id = %d, want %d", i, b.ID, i+1)
		}
	}
}

func TestManager_CreateRecurring_RejectsOccurrencesPastStorableRange(t *testing.T) {
	store := &timeblock.StubStore{
		InsertFunc: func(context.Context, *timeblock.TimeBlock) (int64, error) {
			t.Error("Insert should not be called")
			return 0, nil
		},
	}
	m := newManager(store, timeblock.ConflictAllow)

	start := time.Date(2260, 6, 2, 9, 0, 0, 0, time.UTC)
	_, err := m.CreateRecurring(context.Background(), 1, timeblock.Fields{
		Title: "Anniversary",
		Start: start,
		End:   start.Add(time.Hour),
	}, "FREQ=YEARLY;COUNT=5")
	if !errors.Is(err, timeblock.ErrInvalidInterval) {
		t.Errorf("CreateRecurring() error = %v, want ErrInvalidInterval", err)
	}
}

func TestManager_CreateRecurring_AbortsOnStoreFailure(t *testing.T) {
	calls := 0
	store := &timeblock.StubStore{
		InsertFunc: func(context.Context, *timeblock.TimeBlock) (int64, error) {
			calls++
			if calls == 2 {
				return 0, errDB
			}
			return int64(calls), nil
		},
	}
	m := newManager(store, timeblock.ConflictAllow)

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	_, err := m.CreateRecurring(context.Background(), 1, timeblock.Fields{
		Title: "Standup",
		Start: start,
		End:   start.Add(time.Hour),
	}, "FREQ=DAILY;COUNT=5")
	if !errors.Is(err, timeblock.ErrStoreFailure) {
		t.Errorf("CreateRecurring() error = %v, want ErrStoreFailure", err)
	}
	if calls != 2 {
		t.Errorf("Insert called %d times, want 2", calls)
	}
}
