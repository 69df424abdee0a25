package asteroid_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/asteroid"
)

const feedShapedSnapshot = `{
	"element_count": 3,
	"near_earth_objects": {
		"2026-08-31": [
			{"id": "c", "close_approach_data": [{"close_approach_date": "2026-08-31"}]}
		],
		"2026-08-30": [
			{"id": "a", "name": "Alpha", "close_approach_data": [{"close_approach_date": "2026-08-30",
				"relative_velocity": {"kilometers_per_second": "12.5"},
				"miss_distance": {"kilometers": "75000"}}]},
			{"id": "b", "close_approach_data": [{"close_approach_date": "2026-08-30"}]}
		]
	}
}`

func TestSnapshotProvider_FeedShaped(t *testing.T) {
	p, err := asteroid.NewSnapshotProviderFromBytes([]byte(feedShapedSnapshot))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	records, err := p.Today(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)

	all, err := p.Feed(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSnapshotProvider_BareArray(t *testing.T) {
	p, err := asteroid.NewSnapshotProviderFromBytes([]byte(`[{"id": "x"}, {"id": "y"}]`))
	require.NoError(t, err)

	record, err := p.Lookup(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, "y", record.ID)

	_, err = p.Lookup(context.Background(), "z")
	assert.ErrorIs(t, err, asteroid.ErrNotFound)
}

func TestSnapshotProvider_BrowseShaped(t *testing.T) {
	payload := `{"page": {"size": 2}, "near_earth_objects": [{"id": "1"}, {"id": "2"}, {"id": "3"}]}`
	p, err := asteroid.NewSnapshotProviderFromBytes([]byte(payload))
	require.NoError(t, err)

	page0, err := p.Browse(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, page0, 2)
	assert.Equal(t, "1", page0[0].ID)

	page1, err := p.Browse(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 1)
	assert.Equal(t, "3", page1[0].ID)

	empty, err := p.Browse(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSnapshotProvider_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neos.json")
	require.NoError(t, os.WriteFile(path, []byte(feedShapedSnapshot), 0o600))

	p, err := asteroid.NewSnapshotProvider(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "snapshot", p.Name())
}

func TestSnapshotProvider_RejectsGarbage(t *testing.T) {
	_, err := asteroid.NewSnapshotProviderFromBytes([]byte(`{"nope": true}`))
	assert.Error(t, err)

	_, err = asteroid.NewSnapshotProviderFromBytes([]byte(`not json`))
	assert.Error(t, err)
}

func TestSnapshotProvider_ServiceIntegration(t *testing.T) {
	// A snapshot behaves exactly like the remote catalog behind the service.
	p, err := asteroid.NewSnapshotProviderFromBytes([]byte(feedShapedSnapshot))
	require.NoError(t, err)

	service := asteroid.NewService(asteroid.ServiceConfig{Provider: p})

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	asteroids, err := service.Today(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, asteroids, 2)

	assert.Equal(t, "Alpha", asteroids[0].Name)
	assert.Equal(t, 12.5, asteroids[0].VelocityKmPerSec)
	assert.Equal(t, 75000.0, asteroids[0].MissDistanceKm)
	assert.Equal(t, asteroid.DefaultVelocityKmPerSec, asteroids[1].VelocityKmPerSec)
}
