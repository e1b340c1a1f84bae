package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/javiermolinar/focusflow/internal/timeblock"
)

// blockError turns a Manager error about block id into a user-facing
// error. A block owned by someone else is reported exactly like a missing
// one.
func blockError(action string, id int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, timeblock.ErrNotFound), errors.Is(err, timeblock.ErrForbidden):
		return fmt.Errorf("time block #%d not found", id)
	case errors.Is(err, timeblock.ErrStoreFailure):
		return fmt.Errorf("%s time block: %w", action, err)
	default:
		return err
	}
}

// parseID parses a block ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid time block ID %q", s)
	}
	return id, nil
}
