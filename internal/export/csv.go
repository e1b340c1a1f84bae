package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// CSVHeader is the first record of a CSV export.
var CSVHeader = []string{"Title", "Description", "Start Time", "End Time", "Duration (hours)"}

// csvTimeLayout renders e.g. "Jan 15, 2025, 09:30 AM".
const csvTimeLayout = "Jan 02, 2006, 03:04 PM"

// WriteCSV writes one record per block in the given order. Absent
// descriptions are written as empty fields.
func WriteCSV(w io.Writer, blocks []*timeblock.TimeBlock, loc *time.Location) error {
	if len(blocks) == 0 {
		return ErrNoBlocks
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, b := range blocks {
		record := []string{
			b.Title,
			b.DescriptionText(),
			b.Start.In(loc).Format(csvTimeLayout),
			b.End.In(loc).Format(csvTimeLayout),
			fmt.Sprintf("%.2f", b.Hours()),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record %d: %w", b.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
