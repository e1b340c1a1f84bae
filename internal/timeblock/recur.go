package timeblock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// MaxOccurrences caps the number of blocks a recurrence rule can create.
const MaxOccurrences = 366

// ExpandRecurrence returns the start times produced by an RFC 5545 RRULE
// ("FREQ=WEEKLY;COUNT=4", optionally prefixed with "RRULE:") anchored at
// dtstart. Rules without COUNT stop after limit occurrences.
func ExpandRecurrence(rule string, dtstart time.Time, limit int) ([]time.Time, error) {
	rule = strings.TrimSpace(rule)
	rule = strings.TrimPrefix(rule, "RRULE:")
	if rule == "" {
		return nil, ErrInvalidRecurrence
	}
	if limit <= 0 || limit > MaxOccurrences {
		limit = MaxOccurrences
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	opt.Dtstart = dtstart
	if opt.Count == 0 || opt.Count > limit {
		opt.Count = limit
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	starts := r.All()
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: rule produces no occurrences", ErrInvalidRecurrence)
	}
	return starts, nil
}

// CreateRecurring creates one block per occurrence of rule, each with the
// duration of f. All blocks are inserted in one transaction; if any insert
// fails none are kept.
func (m *Manager) CreateRecurring(ctx context.Context, ownerID int64, f Fields, rule string) ([]*TimeBlock, error) {
	f = f.normalize()
	if err := Validate(f); err != nil {
		return nil, err
	}

	starts, err := ExpandRecurrence(rule, f.Start, MaxOccurrences)
	if err != nil {
		return nil, err
	}

	duration := f.End.Sub(f.Start)
	if !f.Start.Add(duration).Equal(f.End) {
		return nil, ErrInvalidInterval
	}
	for _, start := range starts {
		if err := ValidateInterval(start, start.Add(duration)); err != nil {
			return nil, err
		}
	}

	now := m.clock.Now()
	blocks := make([]*TimeBlock, 0, len(starts))

	err = m.store.RunInTx(ctx, func(ctx context.Context) error {
		for _, start := range starts {
			occ := f
			occ.Start = start
			occ.End = start.Add(duration)
			if err := m.checkConflict(ctx, ownerID, occ, 0); err != nil {
				return err
			}

			b := &TimeBlock{
				OwnerID:     ownerID,
				Title:       occ.Title,
				Description: occ.Description,
				Start:       occ.Start,
				End:         occ.End,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			id, err := m.store.Insert(ctx, b)
			if err != nil {
				return m.storeErr("create recurring", 0, err)
			}
			b.ID = id
			blocks = append(blocks, b)
		}
		return nil
	})
	if err != nil {
		return nil, m.txErr("create recurring", 0, err)
	}

	m.logger.Debug("recurring time blocks created", "count", len(blocks), "owner_id", ownerID)
	return blocks, nil
}
