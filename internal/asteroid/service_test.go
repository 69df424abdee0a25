package asteroid_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/asteroid"
)

// mockProvider is a scriptable catalog source.
type mockProvider struct {
	mu        sync.Mutex
	feedCalls int
	records   []asteroid.RawRecord
	err       error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Today(ctx context.Context, day time.Time) ([]asteroid.RawRecord, error) {
	return m.Feed(ctx, day, day)
}

func (m *mockProvider) Feed(_ context.Context, _, _ time.Time) ([]asteroid.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockProvider) Lookup(_ context.Context, id string) (*asteroid.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, asteroid.ErrNotFound
}

func (m *mockProvider) Browse(_ context.Context, _, _ int) ([]asteroid.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockProvider) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedCalls
}

func window() asteroid.FeedWindow {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	return asteroid.FeedWindow{Start: day, End: day}
}

func TestService_Feed_NormalizesAndCaches(t *testing.T) {
	provider := &mockProvider{records: []asteroid.RawRecord{
		{ID: "1", Name: "One"},
		{ID: "2"},
	}}
	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Minute,
	})

	first, err := service.Feed(context.Background(), window())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "One", first[0].Name)
	assert.Equal(t, "Asteroid 2", first[1].Name)
	assert.Equal(t, asteroid.DefaultVelocityKmPerSec, first[1].VelocityKmPerSec)

	// Second call hits the cache.
	_, err = service.Feed(context.Background(), window())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls())
}

func TestService_Feed_DistinctWindowsCachedSeparately(t *testing.T) {
	provider := &mockProvider{records: []asteroid.RawRecord{{ID: "1"}}}
	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	_, err := service.Feed(context.Background(), window())
	require.NoError(t, err)

	other := asteroid.FeedWindow{
		Start: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
	_, err = service.Feed(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.calls())
	assert.Equal(t, 2, service.Status().Windows)
}

func TestService_Feed_ServesStaleOnProviderError(t *testing.T) {
	provider := &mockProvider{records: []asteroid.RawRecord{{ID: "1"}}}
	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Nanosecond, // expire immediately
	})

	_, err := service.Feed(context.Background(), window())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	provider.setError(errors.New("upstream down"))

	stale, err := service.Feed(context.Background(), window())
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "1", stale[0].ID)
}

func TestService_Feed_UnavailableWithoutCache(t *testing.T) {
	provider := &mockProvider{}
	provider.setError(errors.New("upstream down"))

	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	_, err := service.Feed(context.Background(), window())
	assert.ErrorIs(t, err, asteroid.ErrCatalogUnavailable)
}

func TestService_Get(t *testing.T) {
	provider := &mockProvider{records: []asteroid.RawRecord{
		{ID: "2099942", Name: "99942 Apophis (2004 MN4)"},
	}}
	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	a, err := service.Get(context.Background(), "2099942")
	require.NoError(t, err)
	assert.Equal(t, "99942 Apophis (2004 MN4)", a.Name)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, asteroid.ErrNotFound)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &mockProvider{records: []asteroid.RawRecord{{ID: "1"}}}
	service := asteroid.NewService(asteroid.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
	})

	_, err := service.Feed(context.Background(), window())
	require.NoError(t, err)

	service.InvalidateCache()

	_, err = service.Feed(context.Background(), window())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls())
}
