// Package export writes time block collections as CSV, iCalendar or JSON,
// and reads iCalendar events back as block fields.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// ErrNoBlocks is returned when there is nothing to export.
var ErrNoBlocks = errors.New("no time blocks to export")

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatICS  Format = "ics"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatICS, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, ics or json)", s)
	}
}

// DefaultFilename returns the file name used when no output path is given,
// e.g. "focusflow-timeblocks-2025-01-15.csv".
func DefaultFilename(f Format, now time.Time) string {
	return fmt.Sprintf("focusflow-timeblocks-%s.%s", now.Format("2006-01-02"), f)
}

// Options configures Write.
type Options struct {
	// Location is used for human-readable timestamps. Defaults to UTC.
	Location *time.Location
	// Now stamps iCalendar events. Defaults to time.Now.
	Now time.Time
}

// Write encodes blocks in the given format. Empty collections fail with
// ErrNoBlocks.
func Write(w io.Writer, f Format, blocks []*timeblock.TimeBlock, opts Options) error {
	if len(blocks) == 0 {
		return ErrNoBlocks
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch f {
	case FormatCSV:
		return WriteCSV(w, blocks, opts.Location)
	case FormatICS:
		return WriteICS(w, blocks, opts.Now)
	case FormatJSON:
		return WriteJSON(w, blocks)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
