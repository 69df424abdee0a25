package neows_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/asteroid/neows"
	"github.com/neoscope/neoscope/internal/provider/resilience"
)

func testClient(serverURL string) *neows.Client {
	return neows.NewClient(neows.ClientConfig{
		APIKey:     "DEMO_KEY",
		BaseURL:    serverURL,
		HTTPClient: resilience.New(resilience.Config{Name: "test"}),
	})
}

func TestClient_Feed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed", r.URL.Path)
		assert.Equal(t, "2026-08-29", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("end_date"))
		assert.Equal(t, "DEMO_KEY", r.URL.Query().Get("api_key"))

		response := map[string]any{
			"element_count": 3,
			"near_earth_objects": map[string]any{
				// Later date listed first: the client must re-sort.
				"2026-08-30": []map[string]any{
					{"id": "30a", "name": "Third"},
				},
				"2026-08-29": []map[string]any{
					{
						"id":   "29a",
						"name": "First",
						"close_approach_data": []map[string]any{
							{
								"close_approach_date": "2026-08-29",
								"relative_velocity":   map[string]string{"kilometers_per_second": "8.1"},
								"miss_distance":       map[string]string{"kilometers": "123456.7"},
							},
						},
					},
					{"id": "29b", "name_limited": "Second"},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	records, err := testClient(server.URL).Feed(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Flattened in ascending date order, preserving per-day order.
	assert.Equal(t, "29a", records[0].ID)
	assert.Equal(t, "29b", records[1].ID)
	assert.Equal(t, "30a", records[2].ID)

	// Approach fields stay string-encoded at this layer.
	require.Len(t, records[0].CloseApproaches, 1)
	assert.Equal(t, "8.1", records[0].CloseApproaches[0].RelativeVelocity.KmPerSec)
	assert.Equal(t, "123456.7", records[0].CloseApproaches[0].MissDistance.Kilometers)
}

func TestClient_Today(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
		json.NewEncoder(w).Encode(map[string]any{
			"element_count":      0,
			"near_earth_objects": map[string]any{},
		})
	}))
	defer server.Close()

	records, err := testClient(server.URL).Today(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/3542519", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":                   "3542519",
			"name":                 "(2010 PK9)",
			"absolute_magnitude_h": 21.8,
			"orbital_data":         map[string]string{"orbit_id": "32"},
		})
	}))
	defer server.Close()

	record, err := testClient(server.URL).Lookup(context.Background(), "3542519")
	require.NoError(t, err)

	assert.Equal(t, "3542519", record.ID)
	assert.Equal(t, "(2010 PK9)", record.Name)
	require.NotNil(t, record.AbsoluteMagnitude)
	assert.Equal(t, 21.8, *record.AbsoluteMagnitude)
	assert.NotEmpty(t, record.OrbitalData)
}

func TestClient_Lookup_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, asteroid.ErrNotFound)
}

func TestClient_Browse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/browse", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("size"))

		json.NewEncoder(w).Encode(map[string]any{
			"page": map[string]int{"size": 20, "number": 2, "total_pages": 100, "total_elements": 2000},
			"near_earth_objects": []map[string]any{
				{"id": "a"},
				{"id": "b"},
			},
		})
	}))
	defer server.Close()

	records, err := testClient(server.URL).Browse(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := neows.NewClient(neows.ClientConfig{
		APIKey:  "DEMO_KEY",
		BaseURL: server.URL,
		HTTPClient: resilience.New(resilience.Config{
			Name:           "test",
			MaxRetries:     1,
			InitialBackoff: time.Millisecond,
			MinRequests:    100,
		}),
	})

	_, err := client.Browse(context.Background(), 0, 20)
	assert.Error(t, err)
}
