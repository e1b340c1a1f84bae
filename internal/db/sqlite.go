// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// Connection pragmas. Write transactions take the write lock when they
// begin, so a read-check-write sequence inside RunInTx cannot interleave
// with another writer.
const dsnParams = "_pragma=busy_timeout(5000)" +
	"&_pragma=foreign_keys(1)" +
	"&_pragma=journal_mode(WAL)" +
	"&_txlock=immediate"

const readOnlyParams = "_pragma=busy_timeout(5000)" +
	"&_pragma=query_only(1)"

// SQLite implements timeblock.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ timeblock.Store = (*SQLite)(nil)

// New opens the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?"+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenReadOnly opens an existing database without migrating it or changing
// its journal mode. Writes through the returned store fail.
func OpenReadOnly(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&"+readOnlyParams)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const blockColumns = `id, owner_id, title, description, start_time, end_time, created_at, updated_at`

// Insert adds a new time block and returns its ID.
func (s *SQLite) Insert(ctx context.Context, b *timeblock.TimeBlock) (int64, error) {
	query := `
		INSERT INTO time_blocks (
			owner_id, title, description, start_time, end_time, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.conn(ctx).ExecContext(ctx, query,
		b.OwnerID,
		b.Title,
		nullString(b.Description),
		toNanos(b.Start),
		toNanos(b.End),
		toNanos(b.CreatedAt),
		toNanos(b.UpdatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting time block: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return id, nil
}

// GetByID retrieves a time block by ID. Returns nil if it does not exist.
func (s *SQLite) GetByID(ctx context.Context, id int64) (*timeblock.TimeBlock, error) {
	query := `SELECT ` + blockColumns + ` FROM time_blocks WHERE id = ?`

	b, err := scanBlock(s.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying time block: %w", err)
	}

	return b, nil
}

// ListByOwner returns the owner's blocks, most recent start first.
func (s *SQLite) ListByOwner(ctx context.Context, ownerID int64) ([]*timeblock.TimeBlock, error) {
	query := `
		SELECT ` + blockColumns + `
		FROM time_blocks
		WHERE owner_id = ?
		ORDER BY start_time DESC, id DESC
	`
	return s.queryBlocks(ctx, query, ownerID)
}

// ListByOwnerRange returns the owner's blocks contained in [start, end],
// ordered by start. Blocks crossing either bound are not returned.
func (s *SQLite) ListByOwnerRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*timeblock.TimeBlock, error) {
	query := `
		SELECT ` + blockColumns + `
		FROM time_blocks
		WHERE owner_id = ?
		  AND start_time >= ?
		  AND end_time <= ?
		ORDER BY start_time ASC, id ASC
	`
	return s.queryBlocks(ctx, query, ownerID, toNanos(start), toNanos(end))
}

// ListOverlapping returns the owner's blocks overlapping [start, end),
// excluding excludeID when it is non-zero.
func (s *SQLite) ListOverlapping(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*timeblock.TimeBlock, error) {
	query := `
		SELECT ` + blockColumns + `
		FROM time_blocks
		WHERE owner_id = ?
		  AND (
		      (start_time <= ? AND end_time > ?) OR
		      (start_time < ? AND end_time >= ?) OR
		      (start_time >= ? AND end_time <= ?)
		  )
		  AND id != ?
		ORDER BY start_time ASC, id ASC
	`

	s0, e0 := toNanos(start), toNanos(end)
	return s.queryBlocks(ctx, query, ownerID, s0, s0, e0, e0, s0, e0, excludeID)
}

// Update overwrites a block's mutable fields.
func (s *SQLite) Update(ctx context.Context, id int64, f timeblock.Fields, updatedAt time.Time) (int64, error) {
	query := `
		UPDATE time_blocks
		SET title = ?, description = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.conn(ctx).ExecContext(ctx, query,
		f.Title,
		nullString(f.Description),
		toNanos(f.Start),
		toNanos(f.End),
		toNanos(updatedAt),
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating time block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

// Delete removes a block.
func (s *SQLite) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting time block: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

// Aggregate computes the owner's block count and durations in one query.
func (s *SQLite) Aggregate(ctx context.Context, ownerID int64) (timeblock.Stats, error) {
	query := `
		SELECT COUNT(*), TOTAL(end_time - start_time)
		FROM time_blocks
		WHERE owner_id = ?
	`

	// TOTAL sums as REAL, so long blocks cannot overflow the integer sum.
	var (
		count int
		total float64
	)
	if err := s.conn(ctx).QueryRowContext(ctx, query, ownerID).Scan(&count, &total); err != nil {
		return timeblock.Stats{}, fmt.Errorf("aggregating time blocks: %w", err)
	}

	return timeblock.NewStats(count, total/float64(time.Hour)), nil
}

func (s *SQLite) queryBlocks(ctx context.Context, query string, args ...any) ([]*timeblock.TimeBlock, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying time blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []*timeblock.TimeBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning time block: %w", err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time blocks: %w", err)
	}

	return blocks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlock(row scanner) (*timeblock.TimeBlock, error) {
	var (
		b           timeblock.TimeBlock
		description sql.NullString
		start       int64
		end         int64
		createdAt   int64
		updatedAt   int64
	)

	err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.Title,
		&description,
		&start,
		&end,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		b.Description = &description.String
	}
	b.Start = fromNanos(start)
	b.End = fromNanos(end)
	b.CreatedAt = fromNanos(createdAt)
	b.UpdatedAt = fromNanos(updatedAt)

	return &b, nil
}

// toNanos encodes t for storage. Instants outside the storable range are
// clamped, which only happens for query bounds: blocks are validated first.
func toNanos(t time.Time) int64 {
	switch {
	case t.Before(timeblock.MinInstant):
		return math.MinInt64
	case t.After(timeblock.MaxInstant):
		return math.MaxInt64
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
