package timeblock

import (
	"context"
	"errors"
	"time"
)

// StubStore is a Store whose behaviour is supplied per test.
// RunInTx calls fn directly unless RunInTxFunc is set.
type StubStore struct {
	RunInTxFunc          func(ctx context.Context, fn func(ctx context.Context) error) error
	InsertFunc           func(ctx context.Context, b *TimeBlock) (int64, error)
	GetByIDFunc          func(ctx context.Context, id int64) (*TimeBlock, error)
	ListByOwnerFunc      func(ctx context.Context, ownerID int64) ([]*TimeBlock, error)
	ListByOwnerRangeFunc func(ctx context.Context, ownerID int64, start, end time.Time) ([]*TimeBlock, error)
	ListOverlappingFunc  func(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*TimeBlock, error)
	UpdateFunc           func(ctx context.Context, id int64, f Fields, updatedAt time.Time) (int64, error)
	DeleteFunc           func(ctx context.Context, id int64) (int64, error)
	AggregateFunc        func(ctx context.Context, ownerID int64) (Stats, error)
}

var _ Store = &StubStore{}

func (s *StubStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.RunInTxFunc == nil {
		return fn(ctx)
	}
	return s.RunInTxFunc(ctx, fn)
}

func (s *StubStore) Insert(ctx context.Context, b *TimeBlock) (int64, error) {
	if s.InsertFunc == nil {
		return 0, errors.New("Insert() not implemented by stub")
	}
	return s.InsertFunc(ctx, b)
}

func (s *StubStore) GetByID(ctx context.Context, id int64) (*TimeBlock, error) {
	if s.GetByIDFunc == nil {
		return nil, errors.New("GetByID() not implemented by stub")
	}
	return s.GetByIDFunc(ctx, id)
}

func (s *StubStore) ListByOwner(ctx context.Context, ownerID int64) ([]*TimeBlock, error) {
	if s.ListByOwnerFunc == nil {
		return nil, errors.New("ListByOwner() not implemented by stub")
	}
	return s.ListByOwnerFunc(ctx, ownerID)
}

func (s *StubStore) ListByOwnerRange(ctx context.Context, ownerID int64, start, end time.Time) ([]*TimeBlock, error) {
	if s.ListByOwnerRangeFunc == nil {
		return nil, errors.New("ListByOwnerRange() not implemented by stub")
	}
	return s.ListByOwnerRangeFunc(ctx, ownerID, start, end)
}

func (s *StubStore) ListOverlapping(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*TimeBlock, error) {
	if s.ListOverlappingFunc == nil {
		return nil, errors.New("ListOverlapping() not implemented by stub")
	}
	return s.ListOverlappingFunc(ctx, ownerID, start, end, excludeID)
}

func (s *StubStore) Update(ctx context.Context, id int64, f Fields, updatedAt time.Time) (int64, error) {
	if s.UpdateFunc == nil {
		return 0, errors.New("Update() not implemented by stub")
	}
	return s.UpdateFunc(ctx, id, f, updatedAt)
}

func (s *StubStore) Delete(ctx context.Context, id int64) (int64, error) {
	if s.DeleteFunc == nil {
		return 0, errors.New("Delete() not implemented by stub")
	}
	return s.DeleteFunc(ctx, id)
}

func (s *StubStore) Aggregate(ctx context.Context, ownerID int64) (Stats, error) {
	if s.AggregateFunc == nil {
		return Stats{}, errors.New("Aggregate() not implemented by stub")
	}
	return s.AggregateFunc(ctx, ownerID)
}
