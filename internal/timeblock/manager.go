package timeblock

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ConflictPolicy decides what create and update do when the new interval
// overlaps an existing block of the same owner.
type ConflictPolicy int

const (
	// ConflictAllow stores overlapping blocks. Overlap information stays
	// available through Manager.Overlaps.
	ConflictAllow ConflictPolicy = iota
	// ConflictReject fails with a *ConflictError before any mutation.
	ConflictReject
)

// Options configures a Manager. Zero values select defaults.
type Options struct {
	Clock          Clock
	Logger         *slog.Logger
	ConflictPolicy ConflictPolicy
}

// Manager validates and applies time block operations against a Store.
// It holds no mutable state of its own and is safe for concurrent use when
// the Store is.
type Manager struct {
	store  Store
	clock  Clock
	logger *slog.Logger
	policy ConflictPolicy
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, opts Options) *Manager {
	m := &Manager{
		store:  store,
		clock:  opts.Clock,
		logger: opts.Logger,
		policy: opts.ConflictPolicy,
	}
	if m.clock == nil {
		m.clock = SystemClock{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Clock returns the clock used for timestamps and quick-add resolution.
func (m *Manager) Clock() Clock {
	return m.clock
}

// Create validates the fields and persists a new block for ownerID.
func (m *Manager) Create(ctx context.Context, ownerID int64, f Fields) (*TimeBlock, error) {
	f = f.normalize()
	if err := Validate(f); err != nil {
		return nil, err
	}

	now := m.clock.Now()
	b := &TimeBlock{
		OwnerID:     ownerID,
		Title:       f.Title,
		Description: f.Description,
		Start:       f.Start,
		End:         f.End,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := m.store.RunInTx(ctx, func(ctx context.Context) error {
		if err := m.checkConflict(ctx, ownerID, f, 0); err != nil {
			return err
		}
		id, err := m.store.Insert(ctx, b)
		if err != nil {
			return m.storeErr("create", 0, err)
		}
		b.ID = id
		return nil
	})
	if err != nil {
		return nil, m.txErr("create", 0, err)
	}

	m.logger.Debug("time block created", "id", b.ID, "owner_id", ownerID)
	return b, nil
}

// Update replaces title, description and interval of block id.
// The ownership check runs before validation so that nothing about a
// foreign block is revealed by validation errors.
func (m *Manager) Update(ctx context.Context, id, ownerID int64, f Fields) (*TimeBlock, error) {
	f = f.normalize()

	var updated *TimeBlock
	err := m.store.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := m.owned(ctx, "update", id, ownerID)
		if err != nil {
			return err
		}
		if err := Validate(f); err != nil {
			return err
		}
		if err := m.checkConflict(ctx, ownerID, f, id); err != nil {
			return err
		}

		now := m.clock.Now()
		n, err := m.store.Update(ctx, id, f, now)
		if err != nil {
			return m.storeErr("update", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}

		existing.Title = f.Title
		existing.Description = f.Description
		existing.Start = f.Start
		existing.End = f.End
		existing.UpdatedAt = now
		updated = existing
		return nil
	})
	if err != nil {
		return nil, m.txErr("update", id, err)
	}

	m.logger.Debug("time block updated", "id", id, "owner_id", ownerID)
	return updated, nil
}

// Delete removes block id. Deleting a missing or foreign block is an error.
func (m *Manager) Delete(ctx context.Context, id, ownerID int64) error {
	err := m.store.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := m.owned(ctx, "delete", id, ownerID); err != nil {
			return err
		}
		n, err := m.store.Delete(ctx, id)
		if err != nil {
			return m.storeErr("delete", id, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return m.txErr("delete", id, err)
	}

	m.logger.Debug("time block deleted", "id", id, "owner_id", ownerID)
	return nil
}

// FindByID returns the block or nil when it does not exist.
// It does not filter by owner.
func (m *Manager) FindByID(ctx context.Context, id int64) (*TimeBlock, error) {
	b, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, m.storeErr("get", id, err)
	}
	return b, nil
}

// FindByOwner returns all blocks of ownerID, most recent start first.
func (m *Manager) FindByOwner(ctx context.Context, ownerID int64) ([]*TimeBlock, error) {
	blocks, err := m.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, m.storeErr("list", 0, err)
	}
	return blocks, nil
}

// FindByOwnerAndRange returns the blocks lying entirely inside
// [rangeStart, rangeEnd], ordered by start. Blocks that only partially
// overlap the range are excluded.
func (m *Manager) FindByOwnerAndRange(ctx context.Context, ownerID int64, rangeStart, rangeEnd time.Time) ([]*TimeBlock, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, ErrInvalidInterval
	}
	blocks, err := m.store.ListByOwnerRange(ctx, ownerID, rangeStart, rangeEnd)
	if err != nil {
		return nil, m.storeErr("list range", 0, err)
	}
	return blocks, nil
}

// Overlaps returns the blocks of ownerID that intersect [start, end),
// ignoring excludeID when it is non-zero.
func (m *Manager) Overlaps(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*TimeBlock, error) {
	if err := ValidateInterval(start, end); err != nil {
		return nil, err
	}
	blocks, err := m.store.ListOverlapping(ctx, ownerID, start, end, excludeID)
	if err != nil {
		return nil, m.storeErr("list overlapping", excludeID, err)
	}
	return blocks, nil
}

// Stats returns count, total and average hours over all blocks of ownerID.
func (m *Manager) Stats(ctx context.Context, ownerID int64) (Stats, error) {
	s, err := m.store.Aggregate(ctx, ownerID)
	if err != nil {
		return Stats{}, m.storeErr("aggregate", 0, err)
	}
	if s.Count == 0 {
		return Stats{}, nil
	}
	return s, nil
}

// QuickAdd creates a one hour block titled title at the next occurrence of
// the wall-clock time clock ("HH:MM"), without description.
func (m *Manager) QuickAdd(ctx context.Context, ownerID int64, title, clock string) (*TimeBlock, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return nil, err
	}
	start, end := ResolveQuickAdd(hour, minute, m.clock.Now())
	return m.Create(ctx, ownerID, Fields{Title: title, Start: start, End: end})
}

// owned loads block id and checks that it belongs to ownerID.
func (m *Manager) owned(ctx context.Context, op string, id, ownerID int64) (*TimeBlock, error) {
	b, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, m.storeErr(op, id, err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.OwnerID != ownerID {
		m.logger.Warn("time block owner mismatch",
			"op", op, "id", id, "owner_id", ownerID, "actual_owner_id", b.OwnerID)
		return nil, ErrForbidden
	}
	return b, nil
}

func (m *Manager) checkConflict(ctx context.Context, ownerID int64, f Fields, excludeID int64) error {
	if m.policy != ConflictReject {
		return nil
	}
	blocks, err := m.store.ListOverlapping(ctx, ownerID, f.Start, f.End, excludeID)
	if err != nil {
		return m.storeErr("check overlaps", excludeID, err)
	}
	if len(blocks) > 0 {
		return &ConflictError{Blocks: blocks}
	}
	return nil
}

func (m *Manager) storeErr(op string, id int64, err error) error {
	m.logger.Error("time block store failure", "op", op, "id", id, "err", err)
	return &StoreError{Op: op, ID: id, Err: err}
}

// txErr passes domain and already wrapped errors through and wraps failures
// of the transaction itself (begin, commit).
func (m *Manager) txErr(op string, id int64, err error) error {
	if isDomainError(err) {
		return err
	}
	return m.storeErr(op, id, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrStoreFailure,
		ErrNotFound,
		ErrForbidden,
		ErrConflict,
		ErrInvalidInterval,
		ErrInvalidTitle,
		ErrInvalidDescription,
		ErrInvalidRecurrence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
