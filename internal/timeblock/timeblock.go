// Package timeblock defines the time block domain for focusflow: the block
// type, its validation rules, overlap and aggregate queries, and the Manager
// that enforces ownership over a Store.
package timeblock

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Length bounds, counted in characters.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// The range of instants a block may start and end in: the span of
// int64 Unix nanoseconds.
var (
	MinInstant = time.Unix(0, math.MinInt64).UTC()
	MaxInstant = time.Unix(0, math.MaxInt64).UTC()
)

// Validation errors.
var (
	ErrInvalidInterval    = errors.New("end time must be after start time")
	ErrInvalidTitle       = errors.New("title must be between 1 and 200 characters")
	ErrInvalidDescription = errors.New("description must be at most 1000 characters")
	ErrInvalidClock       = errors.New("time must be in HH:MM format")
	ErrInvalidRecurrence  = errors.New("invalid recurrence rule")
)

// Domain errors.
var (
	ErrNotFound     = errors.New("time block not found")
	ErrForbidden    = errors.New("time block belongs to another owner")
	ErrConflict     = errors.New("time block overlaps with existing block")
	ErrStoreFailure = errors.New("store failure")
)

// TimeBlock is a titled interval [Start, End) owned by one owner.
type TimeBlock struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description *string // nil means no description
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the length of the block.
func (b *TimeBlock) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Hours returns the length of the block in fractional hours. Unlike
// Duration it does not saturate for blocks longer than about 292 years.
func (b *TimeBlock) Hours() float64 {
	return hoursBetween(b.Start, b.End)
}

func hoursBetween(start, end time.Time) float64 {
	secs := float64(end.Unix() - start.Unix())
	nanos := float64(end.Nanosecond() - start.Nanosecond())
	return (secs + nanos/1e9) / 3600
}

// DescriptionText returns the description or an empty string.
func (b *TimeBlock) DescriptionText() string {
	if b.Description == nil {
		return ""
	}
	return *b.Description
}

// Fields holds the mutable attributes of a time block.
type Fields struct {
	Title       string
	Description *string
	Start       time.Time
	End         time.Time
}

// normalize trims the title and drops blank descriptions.
func (f Fields) normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	if f.Description != nil {
		d := strings.TrimSpace(*f.Description)
		if d == "" {
			f.Description = nil
		} else {
			f.Description = &d
		}
	}
	return f
}

// StoreError wraps a persistence failure with the operation that caused it.
type StoreError struct {
	Op  string
	ID  int64
	Err error
}

func (e *StoreError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s time block %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s time blocks: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrStoreFailure.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

// ConflictError lists the blocks a candidate interval overlaps.
type ConflictError struct {
	Blocks []*TimeBlock
}

func (e *ConflictError) Error() string {
	if len(e.Blocks) == 0 {
		return ErrConflict.Error()
	}
	b := e.Blocks[0]
	msg := fmt.Sprintf("%s: conflicts with #%d %q (%s-%s)",
		ErrConflict, b.ID, b.Title,
		b.Start.Format("2006-01-02 15:04"), b.End.Format("15:04"))
	if n := len(e.Blocks) - 1; n > 0 {
		msg += fmt.Sprintf(" and %d more", n)
	}
	return msg
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
