package worker_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/worker"
)

// stubRefresher records refreshed windows and can fail selected ones.
type stubRefresher struct {
	mu      sync.Mutex
	windows []asteroid.FeedWindow
	failOn  func(asteroid.FeedWindow) bool
}

func (s *stubRefresher) RefreshFeed(_ context.Context, window asteroid.FeedWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows = append(s.windows, window)
	if s.failOn != nil && s.failOn(window) {
		return errors.New("provider down")
	}
	return nil
}

func (s *stubRefresher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func TestDefaultRefreshConfig(t *testing.T) {
	cfg := worker.DefaultRefreshConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotEmpty(t, cfg.Windows)
}

func TestRefreshWindow_Window(t *testing.T) {
	today := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	w := worker.RefreshWindow{Name: "next-week", OffsetDays: 7, LengthDays: 6}
	window := w.Window(today)

	assert.Equal(t, time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC), window.End)
}

func TestRefreshJob_Run_AllSucceed(t *testing.T) {
	stub := &stubRefresher{}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.New(io.Discard),
		Catalog: stub,
	})

	result := job.Run(context.Background())

	assert.Equal(t, len(worker.DefaultRefreshWindows()), result.TotalWindows)
	assert.Equal(t, result.TotalWindows, result.Successful)
	assert.Zero(t, result.Failed)
	assert.Equal(t, result.TotalWindows, stub.count())

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(result.Successful), metrics.SuccessfulWindows)
	assert.False(t, metrics.LastRunAt.IsZero())
}

func TestRefreshJob_Run_RecordsFailures(t *testing.T) {
	stub := &stubRefresher{
		failOn: func(w asteroid.FeedWindow) bool {
			// Fail the single-day window only.
			return w.Start.Equal(w.End)
		},
	}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config: worker.RefreshConfig{
			Windows: []worker.RefreshWindow{
				{Name: "today", Priority: 1},
				{Name: "this-week", LengthDays: 6, Priority: 2},
			},
			Concurrency: 2,
		},
		Logger:  zerolog.New(io.Discard),
		Catalog: stub,
	})

	result := job.Run(context.Background())

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "today", result.Errors[0].Window)
	assert.Equal(t, "provider down", result.Errors[0].Error)
}

func TestRefreshJob_Run_CancelledContext(t *testing.T) {
	stub := &stubRefresher{}
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.New(io.Discard),
		Catalog: stub,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := job.Run(ctx)

	assert.Equal(t, result.TotalWindows, result.Failed)
	assert.Zero(t, stub.count())
}

func TestRefreshJob_DefaultsApplied(t *testing.T) {
	job := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:  zerolog.New(io.Discard),
		Catalog: &stubRefresher{},
	})

	result := job.Run(context.Background())
	assert.Equal(t, len(worker.DefaultRefreshWindows()), result.TotalWindows)
}
