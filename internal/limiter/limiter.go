// Package limiter trims ordered result lists: --limit/--offset/--tail windows
// for printed suggestions and the scrolling window of the dropdown.
package limiter

import (
	"fmt"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the [start, end) range the config selects out of length records.
func (c Config) Bounds(length int) (int, int) {
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return start, length
	}

	start := c.Offset
	if start > length {
		start = length
	}
	end := length
	if c.Limit > 0 && start+c.Limit < length {
		end = start + c.Limit
	}
	return start, end
}

// Apply returns the records selected by c, preserving order.
func Apply[T any](c Config, records []T) []T {
	if !c.IsActive() {
		return records
	}
	start, end := c.Bounds(len(records))
	return records[start:end]
}

// Window returns the [start, end) slice of at most size records that keeps
// focus visible, scrolling as little as possible from the previous start.
// A negative focus keeps the window at prevStart.
func Window(length, size, focus, prevStart int) (int, int) {
	if size <= 0 || length <= size {
		return 0, length
	}
	start := prevStart
	if focus >= 0 {
		if focus < start {
			start = focus
		} else if focus >= start+size {
			start = focus - size + 1
		}
	}
	if start > length-size {
		start = length - size
	}
	if start < 0 {
		start = 0
	}
	return start, start + size
}
