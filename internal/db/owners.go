package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyOwnerName is returned when an owner name is blank.
var ErrEmptyOwnerName = errors.New("owner name cannot be empty")

// Owner is the account time blocks belong to. Only its ID matters to the
// time block rules; the name is how the CLI selects it.
type Owner struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// CreateOwner inserts a new owner.
func (s *SQLite) CreateOwner(ctx context.Context, name string) (*Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyOwnerName
	}

	now := time.Now()
	result, err := s.conn(ctx).ExecContext(ctx,
		`INSERT INTO owners (name, created_at) VALUES (?, ?)`, name, toNanos(now))
	if err != nil {
		return nil, fmt.Errorf("inserting owner: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return &Owner{ID: id, Name: name, CreatedAt: now.UTC()}, nil
}

// OwnerByName returns the owner with the given name, or nil if none exists.
func (s *SQLite) OwnerByName(ctx context.Context, name string) (*Owner, error) {
	var (
		o         Owner
		createdAt int64
	)
	err := s.conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM owners WHERE name = ?`, strings.TrimSpace(name),
	).Scan(&o.ID, &o.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying owner: %w", err)
	}
	o.CreatedAt = fromNanos(createdAt)
	return &o, nil
}

// EnsureOwner returns the owner named name, creating it if needed.
func (s *SQLite) EnsureOwner(ctx context.Context, name string) (*Owner, error) {
	var owner *Owner
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.OwnerByName(ctx, name)
		if err != nil {
			return err
		}
		if o == nil {
			o, err = s.CreateOwner(ctx, name)
			if err != nil {
				return err
			}
		}
		owner = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// ListOwners returns all owners ordered by name.
func (s *SQLite) ListOwners(ctx context.Context) ([]*Owner, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT id, name, created_at FROM owners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var owners []*Owner
	for rows.Next() {
		var (
			o         Owner
			createdAt int64
		)
		if err := rows.Scan(&o.ID, &o.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		o.CreatedAt = fromNanos(createdAt)
		owners = append(owners, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}

// DeleteOwner removes an owner together with all of its time blocks.
// Returns the number of owners removed.
func (s *SQLite) DeleteOwner(ctx context.Context, id int64) (int64, error) {
	result, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM owners WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting owner: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}
