package asteroid

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider is a catalog source: the remote NeoWs API or a local snapshot.
// All operations return raw records; the service normalizes at this
// boundary so raw strings never travel further.
type Provider interface {
	Name() string
	Today(ctx context.Context, day time.Time) ([]RawRecord, error)
	Feed(ctx context.Context, start, end time.Time) ([]RawRecord, error)
	Lookup(ctx context.Context, id string) (*RawRecord, error)
	Browse(ctx context.Context, page, size int) ([]RawRecord, error)
}

// ServiceConfig holds configuration for the asteroid service.
type ServiceConfig struct {
	// Provider is the catalog source.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long feed windows stay fresh (default 10 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving expired windows when the provider
	// fails (default 2 hours). Approach data changes slowly; stale feed
	// data beats an empty map.
	StaleIfErrorTTL time.Duration
}

// Service serves normalized asteroids with per-window feed caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	feeds map[string]*feedEntry
}

type feedEntry struct {
	asteroids []Asteroid
	fetchedAt time.Time
	expiry    time.Time
}

// NewService creates a new asteroid service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 2 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		feeds:           make(map[string]*feedEntry),
	}
}

// Feed returns normalized asteroids approaching within the window,
// preserving catalog order. Fresh cache wins; on provider failure an
// expired window is served until StaleIfErrorTTL runs out.
func (s *Service) Feed(ctx context.Context, window FeedWindow) ([]Asteroid, error) {
	key := feedKey(window)

	s.mu.RLock()
	entry, ok := s.feeds[key]
	if ok && time.Now().Before(entry.expiry) {
		asteroids := entry.asteroids
		s.mu.RUnlock()
		return asteroids, nil
	}
	s.mu.RUnlock()

	return s.refreshFeed(ctx, window)
}

// Today returns normalized asteroids approaching on the given day.
func (s *Service) Today(ctx context.Context, day time.Time) ([]Asteroid, error) {
	return s.Feed(ctx, FeedWindow{Start: day, End: day})
}

// Get returns one normalized asteroid by id, straight from the provider.
// Lookups bypass the feed cache: the lookup shape carries the full approach
// history, which feed records truncate.
func (s *Service) Get(ctx context.Context, id string) (Asteroid, error) {
	raw, err := s.provider.Lookup(ctx, id)
	if err != nil {
		return Asteroid{}, err
	}
	return Normalize(*raw)
}

// Browse returns one normalized catalog page.
func (s *Service) Browse(ctx context.Context, page, size int) ([]Asteroid, error) {
	raws, err := s.provider.Browse(ctx, page, size)
	if err != nil {
		return nil, err
	}

	asteroids, skipped := NormalizeAll(raws)
	if skipped > 0 {
		s.logger.Warn().
			Int("skipped", skipped).
			Int("page", page).
			Msg("browse records without id skipped")
	}
	return asteroids, nil
}

// RefreshFeed forces a window's cache entry to be refetched. Used by the
// background warmer.
func (s *Service) RefreshFeed(ctx context.Context, window FeedWindow) error {
	_, err := s.refreshFeed(ctx, window)
	return err
}

// InvalidateCache drops every cached feed window.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds = make(map[string]*feedEntry)
}

// CacheStatus describes the feed cache for ops endpoints.
type CacheStatus struct {
	Provider      string
	Windows       int
	OldestFetched time.Time
}

// Status reports the current cache state.
func (s *Service) Status() CacheStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := CacheStatus{
		Provider: s.provider.Name(),
		Windows:  len(s.feeds),
	}
	for _, e := range s.feeds {
		if status.OldestFetched.IsZero() || e.fetchedAt.Before(status.OldestFetched) {
			status.OldestFetched = e.fetchedAt
		}
	}
	return status
}

func (s *Service) refreshFeed(ctx context.Context, window FeedWindow) ([]Asteroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := feedKey(window)

	// Another caller may have refreshed while we waited for the lock.
	if entry, ok := s.feeds[key]; ok && time.Now().Before(entry.expiry) {
		return entry.asteroids, nil
	}

	raws, err := s.provider.Feed(ctx, window.Start, window.End)
	if err != nil {
		// Serve stale if we still can.
		if entry, ok := s.feeds[key]; ok && time.Since(entry.fetchedAt) < s.staleIfErrorTTL {
			s.logger.Warn().
				Err(err).
				Str("window", key).
				Time("fetched_at", entry.fetchedAt).
				Msg("provider failed, serving stale feed")
			return entry.asteroids, nil
		}
		s.logger.Error().Err(err).Str("window", key).Msg("feed refresh failed")
		return nil, ErrCatalogUnavailable
	}

	asteroids, skipped := NormalizeAll(raws)
	if skipped > 0 {
		s.logger.Warn().
			Int("skipped", skipped).
			Str("window", key).
			Msg("feed records without id skipped")
	}

	now := time.Now()
	s.feeds[key] = &feedEntry{
		asteroids: asteroids,
		fetchedAt: now,
		expiry:    now.Add(s.cacheTTL),
	}

	s.logger.Info().
		Str("window", key).
		Int("asteroids", len(asteroids)).
		Msg("feed refreshed")

	return asteroids, nil
}

func feedKey(w FeedWindow) string {
	return w.Start.Format("2006-01-02") + "/" + w.End.Format("2006-01-02")
}
