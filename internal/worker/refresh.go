package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/neoscope/neoscope/internal/asteroid"
)

// FeedRefresher warms feed windows; *asteroid.Service satisfies it.
type FeedRefresher interface {
	RefreshFeed(ctx context.Context, window asteroid.FeedWindow) error
}

// RefreshJob keeps the catalog feed cache warm.
type RefreshJob struct {
	config  RefreshConfig
	logger  zerolog.Logger
	catalog FeedRefresher

	// now is swappable for tests.
	now func() time.Time

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns         int64
	SuccessfulWindows int64
	FailedWindows     int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config  RefreshConfig
	Logger  zerolog.Logger
	Catalog FeedRefresher
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Windows) == 0 {
		config.Windows = DefaultRefreshWindows()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		catalog: cfg.Catalog,
		now:     time.Now,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalWindows int
	Successful   int
	Failed       int
	Errors       []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Window string
	Error  string
}

// Run refreshes all configured windows with bounded concurrency.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := j.now()
	today := startTime.UTC()

	windows := make([]RefreshWindow, len(j.config.Windows))
	copy(windows, j.config.Windows)
	sort.SliceStable(windows, func(a, b int) bool {
		return windows[a].Priority < windows[b].Priority
	})

	result := &RefreshResult{
		StartTime:    startTime,
		TotalWindows: len(windows),
	}

	j.logger.Info().
		Int("total_windows", result.TotalWindows).
		Int("concurrency", j.config.Concurrency).
		Msg("starting feed refresh job")

	windowsChan := make(chan RefreshWindow, len(windows))
	resultsChan := make(chan windowResult, len(windows))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, today, windowsChan, resultsChan)
		}()
	}

	for _, w := range windows {
		windowsChan <- w
	}
	close(windowsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for wr := range resultsChan {
		if wr.err == nil {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Window: wr.name,
				Error:  wr.err.Error(),
			})
		}
	}

	result.EndTime = j.now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("feed refresh job completed")

	return result
}

type windowResult struct {
	name string
	err  error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, today time.Time, windows <-chan RefreshWindow, results chan<- windowResult) {
	for w := range windows {
		select {
		case <-ctx.Done():
			results <- windowResult{name: w.Name, err: ctx.Err()}
		default:
			windowCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
			err := j.catalog.RefreshFeed(windowCtx, w.Window(today))
			cancel()

			if err != nil {
				j.logger.Warn().
					Err(err).
					Str("window", w.Name).
					Msg("window refresh failed")
			}
			results <- windowResult{name: w.Name, err: err}
		}
	}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulWindows += int64(result.Successful)
	j.metrics.FailedWindows += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:         j.metrics.TotalRuns,
		SuccessfulWindows: j.metrics.SuccessfulWindows,
		FailedWindows:     j.metrics.FailedWindows,
		LastRunAt:         j.metrics.LastRunAt,
		LastRunDuration:   j.metrics.LastRunDuration,
		TotalDuration:     j.metrics.TotalDuration,
	}
}
