// Package worker provides background job processing for NeoScope.
package worker

import (
	"time"

	"github.com/neoscope/neoscope/internal/asteroid"
)

// RefreshWindow is one date window to keep warm, expressed relative to the
// day the job runs.
type RefreshWindow struct {
	// Name is the human-readable name of the window.
	Name string

	// OffsetDays is the window start, in days from today.
	OffsetDays int

	// LengthDays is how many extra days the window spans beyond its start.
	LengthDays int

	// Priority determines refresh order (lower = higher priority).
	Priority int
}

// Window resolves the relative window against a concrete day.
func (w RefreshWindow) Window(today time.Time) asteroid.FeedWindow {
	start := today.AddDate(0, 0, w.OffsetDays)
	return asteroid.FeedWindow{
		Start: start,
		End:   start.AddDate(0, 0, w.LengthDays),
	}
}

// RefreshConfig holds configuration for the feed refresh job.
type RefreshConfig struct {
	// Windows are the date windows to refresh.
	// If empty, uses DefaultRefreshWindows.
	Windows []RefreshWindow

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Windows:     DefaultRefreshWindows(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// DefaultRefreshWindows returns the windows clients ask for most: today,
// the rest of this week, and the week after.
func DefaultRefreshWindows() []RefreshWindow {
	return []RefreshWindow{
		{Name: "today", OffsetDays: 0, LengthDays: 0, Priority: 1},
		{Name: "this-week", OffsetDays: 0, LengthDays: 6, Priority: 2},
		{Name: "next-week", OffsetDays: 7, LengthDays: 6, Priority: 3},
	}
}
