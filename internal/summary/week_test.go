package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

type finderFunc func(ctx context.Context, ownerID int64, start, end time.Time) ([]*timeblock.TimeBlock, error)

func (f finderFunc) FindByOwnerAndRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*timeblock.TimeBlock, error) {
	return f(ctx, ownerID, start, end)
}

func block(id int64, day time.Time, startHour, startMin, endHour, endMin int) *timeblock.TimeBlock {
	return &timeblock.TimeBlock{
		ID:      id,
		OwnerID: 1,
		Title:   "block",
		Start:   time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, day.Location()),
		End:     time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, day.Location()),
	}
}

func TestSummarizeWeek(t *testing.T) {
	weekOf := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) // Wednesday
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	nextMonday := monday.AddDate(0, 0, 7)

	blocks := []*timeblock.TimeBlock{
		block(1, monday, 9, 0, 10, 0),
		block(2, monday.AddDate(0, 0, 1), 10, 0, 10, 30),
		block(3, monday, 9, 30, 11, 0), // overlaps 1
		block(4, nextMonday, 9, 0, 10, 0),
		block(5, monday.AddDate(0, 0, -1), 9, 0, 10, 0),
	}

	summary := SummarizeWeek(weekOf, blocks)

	if !summary.Start.Equal(monday) {
		t.Fatalf("start = %v, want %v", summary.Start, monday)
	}
	if !summary.End.Equal(nextMonday) {
		t.Fatalf("end = %v, want %v", summary.End, nextMonday)
	}
	if len(summary.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(summary.Blocks))
	}
	if summary.Blocks[0].ID != 1 || summary.Blocks[1].ID != 3 || summary.Blocks[2].ID != 2 {
		t.Errorf("blocks not ordered by start: %d %d %d",
			summary.Blocks[0].ID, summary.Blocks[1].ID, summary.Blocks[2].ID)
	}

	if summary.Stats.Count != 3 || summary.Stats.TotalHours != 3 {
		t.Errorf("stats = %+v, want 3 blocks / 3h", summary.Stats)
	}
	if got := summary.Days[0].Stats; got.Count != 2 || got.TotalHours != 2.5 {
		t.Errorf("monday stats = %+v, want 2 blocks / 2.5h", got)
	}
	if got := summary.Days[1].Stats; got.Count != 1 || got.TotalHours != 0.5 {
		t.Errorf("tuesday stats = %+v, want 1 block / 0.5h", got)
	}
	if summary.Days[6].Stats.Count != 0 {
		t.Errorf("sunday should be empty, got %+v", summary.Days[6].Stats)
	}

	if len(summary.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(summary.Conflicts))
	}
	if summary.Conflicts[0].First.ID != 1 || summary.Conflicts[0].Second.ID != 3 {
		t.Errorf("conflict = %d/%d, want 1/3", summary.Conflicts[0].First.ID, summary.Conflicts[0].Second.ID)
	}

	day, ok := summary.BusiestDay()
	if !ok || !day.Date.Equal(monday) {
		t.Errorf("BusiestDay() = %v, %v; want monday", day.Date, ok)
	}
}

func TestSummarizeWeek_TouchingBlocksDoNotConflict(t *testing.T) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	summary := SummarizeWeek(monday, []*timeblock.TimeBlock{
		block(1, monday, 9, 0, 10, 0),
		block(2, monday, 10, 0, 11, 0),
	})

	if len(summary.Conflicts) != 0 {
		t.Errorf("conflicts = %d, want 0", len(summary.Conflicts))
	}
}

func TestFindConflicts(t *testing.T) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	// Unsorted input: 1 contains 3, 3 overlaps 4, 2 only touches 1.
	conflicts := FindConflicts([]*timeblock.TimeBlock{
		block(4, monday, 11, 30, 12, 30),
		block(2, monday, 13, 0, 14, 0),
		block(1, monday, 9, 0, 13, 0),
		block(3, monday, 10, 0, 12, 0),
	})

	want := [][2]int64{{1, 3}, {1, 4}, {3, 4}}
	if len(conflicts) != len(want) {
		t.Fatalf("conflicts = %d, want %d", len(conflicts), len(want))
	}
	for i, c := range conflicts {
		if c.First.ID != want[i][0] || c.Second.ID != want[i][1] {
			t.Errorf("conflict %d = #%d/#%d, want #%d/#%d", i, c.First.ID, c.Second.ID, want[i][0], want[i][1])
		}
	}
}

func TestSummarizeWeek_Empty(t *testing.T) {
	summary := SummarizeWeek(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), nil)

	if summary.Stats.Count != 0 {
		t.Errorf("stats = %+v, want zero", summary.Stats)
	}
	if _, ok := summary.Stats.Average(); ok {
		t.Error("Average() should report absence for an empty week")
	}
	if _, ok := summary.BusiestDay(); ok {
		t.Error("BusiestDay() should report no day for an empty week")
	}
}

func TestBuildWeekSummary(t *testing.T) {
	weekOf := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	var gotStart, gotEnd time.Time
	finder := finderFunc(func(_ context.Context, ownerID int64, start, end time.Time) ([]*timeblock.TimeBlock, error) {
		if ownerID != 7 {
			t.Errorf("ownerID = %d, want 7", ownerID)
		}
		gotStart, gotEnd = start, end
		return []*timeblock.TimeBlock{block(1, monday, 9, 0, 10, 0)}, nil
	})

	summary, err := BuildWeekSummary(context.Background(), finder, 7, weekOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotStart.Equal(monday) || !gotEnd.Equal(monday.AddDate(0, 0, 7)) {
		t.Errorf("queried [%v, %v], want the Monday to Monday window", gotStart, gotEnd)
	}
	if summary.Stats.Count != 1 {
		t.Errorf("stats count = %d, want 1", summary.Stats.Count)
	}

	failing := finderFunc(func(context.Context, int64, time.Time, time.Time) ([]*timeblock.TimeBlock, error) {
		return nil, timeblock.ErrStoreFailure
	})
	if _, err := BuildWeekSummary(context.Background(), failing, 7, weekOf); !errors.Is(err, timeblock.ErrStoreFailure) {
		t.Errorf("error = %v, want ErrStoreFailure", err)
	}
}
