package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func newTestOwner(t *testing.T, repo *SQLite, name string) *Owner {
	t.Helper()
	o, err := repo.CreateOwner(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateOwner(%q) failed: %v", name, err)
	}
	return o
}

// at returns 2025-01-15 hh:mm UTC.
func at(hh, mm int) time.Time {
	return time.Date(2025, 1, 15, hh, mm, 0, 0, time.UTC)
}

func insertBlock(t *testing.T, repo *SQLite, ownerID int64, title string, start, end time.Time) *timeblock.TimeBlock {
	t.Helper()
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	b := &timeblock.TimeBlock{
		OwnerID:   ownerID,
		Title:     title,
		Start:     start,
		End:       end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := repo.Insert(context.Background(), b)
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", title, err)
	}
	b.ID = id
	return b
}

func blockIDs(blocks []*timeblock.TimeBlock) []int64 {
	ids := make([]int64, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")

	desc := "Chapter 3 draft"
	loc := time.FixedZone("CET", 3600)
	b := &timeblock.TimeBlock{
		OwnerID:     owner.ID,
		Title:       "Write",
		Description: &desc,
		Start:       time.Date(2025, 1, 15, 10, 0, 0, 0, loc),
		End:         time.Date(2025, 1, 15, 11, 30, 0, 0, loc),
		CreatedAt:   time.Date(2025, 1, 14, 9, 0, 0, 123, time.UTC),
		UpdatedAt:   time.Date(2025, 1, 14, 9, 0, 0, 123, time.UTC),
	}

	id, err := repo.Insert(ctx, b)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected ID to be set after insert")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected block, got nil")
	}
	if got.OwnerID != owner.ID || got.Title != "Write" {
		t.Errorf("got owner %d title %q", got.OwnerID, got.Title)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description = %v, want %q", got.Description, desc)
	}
	if !got.Start.Equal(b.Start) || !got.End.Equal(b.End) {
		t.Errorf("interval = %v-%v, want %v-%v", got.Start, got.End, b.Start, b.End)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) || !got.UpdatedAt.Equal(b.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, b.CreatedAt)
	}
}

func TestGetByID_Missing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing block, got %+v", got)
	}
}

func TestInsert_NullDescription(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo, "alice")

	b := insertBlock(t, repo, owner.ID, "No notes", at(9, 0), at(10, 0))

	got, err := repo.GetByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Description != nil {
		t.Errorf("expected nil description, got %q", *got.Description)
	}
}

func TestInsert_RejectsInvertedInterval(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo, "alice")

	b := &timeblock.TimeBlock{
		OwnerID: owner.ID,
		Title:   "Backwards",
		Start:   at(11, 0),
		End:     at(10, 0),
	}
	if _, err := repo.Insert(context.Background(), b); err == nil {
		t.Fatal("expected check constraint error for inverted interval")
	}
}

func TestInsert_RejectsUnknownOwner(t *testing.T) {
	repo := newTestRepo(t)

	b := &timeblock.TimeBlock{
		OwnerID: 999,
		Title:   "Orphan",
		Start:   at(9, 0),
		End:     at(10, 0),
	}
	if _, err := repo.Insert(context.Background(), b); err == nil {
		t.Fatal("expected foreign key error for unknown owner")
	}
}

func TestListByOwner_OrderAndPartition(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	alice := newTestOwner(t, repo, "alice")
	bob := newTestOwner(t, repo, "bob")

	early := insertBlock(t, repo, alice.ID, "Early", at(8, 0), at(9, 0))
	late := insertBlock(t, repo, alice.ID, "Late", at(15, 0), at(16, 0))
	mid := insertBlock(t, repo, alice.ID, "Mid", at(11, 0), at(12, 0))
	insertBlock(t, repo, bob.ID, "Bob's", at(10, 0), at(11, 0))

	got, err := repo.ListByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}

	want := []int64{late.ID, mid.ID, early.ID}
	if !equalIDs(blockIDs(got), want) {
		t.Errorf("ListByOwner ids = %v, want %v", blockIDs(got), want)
	}
}

func TestListByOwnerRange_Containment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")

	partial := insertBlock(t, repo, owner.ID, "Partial", at(9, 0), at(10, 0))
	inside := insertBlock(t, repo, owner.ID, "Inside", at(10, 0), at(11, 0))
	edge := insertBlock(t, repo, owner.ID, "Edge", at(11, 0), at(12, 0))
	after := insertBlock(t, repo, owner.ID, "After", at(11, 30), at(12, 30))

	got, err := repo.ListByOwnerRange(ctx, owner.ID, at(9, 30), at(12, 0))
	if err != nil {
		t.Fatalf("ListByOwnerRange failed: %v", err)
	}

	want := []int64{inside.ID, edge.ID}
	if !equalIDs(blockIDs(got), want) {
		t.Errorf("ListByOwnerRange ids = %v, want %v (partial=%d after=%d excluded)",
			blockIDs(got), want, partial.ID, after.ID)
	}
}

func TestListOverlapping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")
	other := newTestOwner(t, repo, "bob")

	x := insertBlock(t, repo, owner.ID, "X", at(10, 0), at(11, 0))
	insertBlock(t, repo, other.ID, "Foreign", at(10, 0), at(11, 0))

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude int64
		want    []int64
	}{
		{"exact same interval", at(10, 0), at(11, 0), 0, []int64{x.ID}},
		{"starts during existing", at(10, 30), at(11, 30), 0, []int64{x.ID}},
		{"ends during existing", at(9, 30), at(10, 30), 0, []int64{x.ID}},
		{"contained within existing", at(10, 15), at(10, 45), 0, []int64{x.ID}},
		{"contains existing", at(9, 0), at(12, 0), 0, []int64{x.ID}},
		{"touching after", at(11, 0), at(12, 0), 0, nil},
		{"touching before", at(9, 0), at(10, 0), 0, nil},
		{"excluded self", at(10, 30), at(11, 30), x.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListOverlapping(ctx, owner.ID, tt.start, tt.end, tt.exclude)
			if err != nil {
				t.Fatalf("ListOverlapping failed: %v", err)
			}
			if !equalIDs(blockIDs(got), tt.want) {
				t.Errorf("ListOverlapping ids = %v, want %v", blockIDs(got), tt.want)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")
	b := insertBlock(t, repo, owner.ID, "Old", at(9, 0), at(10, 0))

	desc := "moved"
	updatedAt := time.Date(2025, 1, 16, 7, 0, 0, 0, time.UTC)
	n, err := repo.Update(ctx, b.ID, timeblock.Fields{
		Title:       "New",
		Description: &desc,
		Start:       at(13, 0),
		End:         at(14, 0),
	}, updatedAt)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d, want 1", n)
	}

	got, err := repo.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New" || got.DescriptionText() != "moved" {
		t.Errorf("got title %q description %q", got.Title, got.DescriptionText())
	}
	if !got.Start.Equal(at(13, 0)) || !got.End.Equal(at(14, 0)) {
		t.Errorf("interval = %v-%v", got.Start, got.End)
	}
	if !got.UpdatedAt.Equal(updatedAt) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, updatedAt)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("created_at changed: %v, want %v", got.CreatedAt, b.CreatedAt)
	}
}

func TestUpdateAndDelete_MissingRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.Update(ctx, 7, timeblock.Fields{Title: "x", Start: at(9, 0), End: at(10, 0)}, time.Now())
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Update rows affected = %d, want 0", n)
	}

	n, err = repo.Delete(ctx, 7)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Delete rows affected = %d, want 0", n)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")
	b := insertBlock(t, repo, owner.ID, "Doomed", at(9, 0), at(10, 0))

	n, err := repo.Delete(ctx, b.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d, want 1", n)
	}

	got, err := repo.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("expected block to be gone")
	}
}

func TestAggregate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")
	other := newTestOwner(t, repo, "bob")

	empty, err := repo.Aggregate(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if empty.Count != 0 || empty.TotalHours != 0 {
		t.Errorf("empty aggregate = %+v", empty)
	}
	if _, ok := empty.Average(); ok {
		t.Error("expected no average for empty aggregate")
	}

	insertBlock(t, repo, owner.ID, "1h", at(8, 0), at(9, 0))
	insertBlock(t, repo, owner.ID, "2h", at(10, 0), at(12, 0))
	insertBlock(t, repo, owner.ID, "3h", at(13, 0), at(16, 0))
	insertBlock(t, repo, other.ID, "not mine", at(8, 0), at(18, 0))

	got, err := repo.Aggregate(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if got.Count != 3 || got.TotalHours != 6 || got.AverageHours != 2 {
		t.Errorf("Aggregate = %+v, want count=3 total=6 avg=2", got)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")

	errBoom := errors.New("boom")
	err := repo.RunInTx(ctx, func(ctx context.Context) error {
		insertBlockCtx(t, ctx, repo, owner.ID, "Rolled back")
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("RunInTx error = %v, want %v", err, errBoom)
	}

	blocks, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected rollback to discard insert, found %d blocks", len(blocks))
	}
}

func TestRunInTx_CommitAndNesting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestOwner(t, repo, "alice")

	err := repo.RunInTx(ctx, func(ctx context.Context) error {
		insertBlockCtx(t, ctx, repo, owner.ID, "Outer")
		return repo.RunInTx(ctx, func(ctx context.Context) error {
			insertBlockCtx(t, ctx, repo, owner.ID, "Inner")
			return nil
		})
	})
	if err != nil {
		t.Fatalf("RunInTx failed: %v", err)
	}

	blocks, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("expected 2 committed blocks, got %d", len(blocks))
	}
}

func insertBlockCtx(t *testing.T, ctx context.Context, repo *SQLite, ownerID int64, title string) {
	t.Helper()
	_, err := repo.Insert(ctx, &timeblock.TimeBlock{
		OwnerID:   ownerID,
		Title:     title,
		Start:     at(9, 0),
		End:       at(10, 0),
		CreatedAt: at(8, 0),
		UpdatedAt: at(8, 0),
	})
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", title, err)
	}
}

// plainDatabase creates a SQLite file holding only a notes table.
func plainDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plain.db")
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening plain database: %v", err)
	}
	defer func() { _ = raw.Close() }()
	if _, err := raw.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`); err != nil {
		t.Fatalf("creating notes table: %v", err)
	}
	return path
}

func schemaOf(t *testing.T, path string) (journalMode string, tables []string) {
	t.Helper()
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopening database: %v", err)
	}
	defer func() { _ = raw.Close() }()

	if err := raw.QueryRow(`PRAGMA journal_mode`).Scan(&journalMode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	rows, err := raw.Query(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		t.Fatalf("listing tables: %v", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scanning table name: %v", err)
		}
		tables = append(tables, name)
	}
	return journalMode, tables
}

func TestOpenReadOnly_LeavesDatabaseUntouched(t *testing.T) {
	path := plainDatabase(t)
	ctx := context.Background()

	repo, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	if _, err := repo.OwnerByName(ctx, "ada"); err == nil {
		t.Error("OwnerByName() on a database without owners should fail")
	}
	if _, err := repo.CreateOwner(ctx, "ada"); err == nil {
		t.Error("CreateOwner() through a read-only store should fail")
	}
	_ = repo.Close()

	mode, tables := schemaOf(t, path)
	if mode != "delete" {
		t.Errorf("journal_mode = %q, want delete", mode)
	}
	if len(tables) != 1 || tables[0] != "notes" {
		t.Errorf("tables = %v, want [notes]", tables)
	}
}

func TestOpenReadOnly_ReadsBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.db")
	ctx := context.Background()

	src, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	owner := newTestOwner(t, src, "ada")
	if _, err := src.Insert(ctx, &timeblock.TimeBlock{
		OwnerID: owner.ID, Title: "Write", Start: at(9, 0), End: at(10, 0),
		CreatedAt: at(8, 0), UpdatedAt: at(8, 0),
	}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	_ = src.Close()

	repo, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	got, err := repo.OwnerByName(ctx, "ada")
	if err != nil || got == nil {
		t.Fatalf("OwnerByName() = %v, %v", got, err)
	}
	blocks, err := repo.ListByOwner(ctx, got.ID)
	if err != nil {
		t.Fatalf("ListByOwner() failed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Title != "Write" {
		t.Errorf("ListByOwner() = %v, want the Write block", blocks)
	}
	if _, err := repo.Delete(ctx, blocks[0].ID); err == nil {
		t.Error("Delete() through a read-only store should fail")
	}
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	if _, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("OpenReadOnly() on a missing file should fail")
	}
}
