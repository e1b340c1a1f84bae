package timeblock

import (
	"context"
	"time"
)

// Store defines the persistence contract for time blocks.
// The Store performs no authorization; callers pass the owner explicitly.
type Store interface {
	// RunInTx runs fn in a transaction. Store calls made with the context
	// passed to fn join that transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Insert persists a new block and returns its assigned ID.
	Insert(ctx context.Context, b *TimeBlock) (int64, error)

	// GetByID returns the block with the given ID, or nil if none exists.
	GetByID(ctx context.Context, id int64) (*TimeBlock, error)

	// ListByOwner returns the owner's blocks, most recent start first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*TimeBlock, error)

	// ListByOwnerRange returns the owner's blocks lying entirely inside
	// [start, end], ordered by start ascending.
	ListByOwnerRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*TimeBlock, error)

	// ListOverlapping returns the owner's blocks overlapping [start, end),
	// skipping excludeID when it is non-zero.
	ListOverlapping(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*TimeBlock, error)

	// Update overwrites title, description and interval and sets updatedAt.
	// Returns the number of rows affected.
	Update(ctx context.Context, id int64, f Fields, updatedAt time.Time) (int64, error)

	// Delete removes the block. Returns the number of rows affected.
	Delete(ctx context.Context, id int64) (int64, error)

	// Aggregate computes count, total and average hours over the owner's blocks.
	Aggregate(ctx context.Context, ownerID int64) (Stats, error)
}
