package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// BlockJSON is the JSON representation of a time block.
type BlockJSON struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Hours       float64   `json:"duration_hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBlockJSON converts a block.
func NewBlockJSON(b *timeblock.TimeBlock) BlockJSON {
	return BlockJSON{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Description: b.Description,
		StartTime:   b.Start,
		EndTime:     b.End,
		Hours:       b.Hours(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// WriteJSON writes blocks as an indented JSON array. An empty collection
// is written as [].
func WriteJSON(w io.Writer, blocks []*timeblock.TimeBlock) error {
	out := make([]BlockJSON, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, NewBlockJSON(b))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
