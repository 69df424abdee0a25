// Package neows provides a client for NASA's Near Earth Object Web Service
// (NeoWs). Each operation returns raw catalog records; normalization into
// canonical asteroids happens in the asteroid service, never here.
package neows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/neoscope/neoscope/internal/asteroid"
	"github.com/neoscope/neoscope/internal/provider/resilience"
)

const (
	// ProviderName identifies this catalog provider.
	ProviderName = "neows"

	// DefaultBaseURL is the NeoWs API base URL.
	DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

	// dateFormat is the feed query date layout.
	dateFormat = "2006-01-02"
)

// ClientConfig holds configuration for the NeoWs client.
type ClientConfig struct {
	// APIKey is the api.nasa.gov key (required; DEMO_KEY works rate-limited).
	APIKey string

	// BaseURL overrides the API base URL, mainly for tests.
	BaseURL string

	// HTTPClient is the resilient client to use. If nil a default one is
	// created for this provider.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a NeoWs API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new NeoWs client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.New(resilience.Config{Name: ProviderName})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Today fetches the records approaching on the given day (the upstream
// "today" feed variant is a one-day window).
func (c *Client) Today(ctx context.Context, day time.Time) ([]asteroid.RawRecord, error) {
	return c.Feed(ctx, day, day)
}

// Feed fetches records for a date window. NeoWs caps windows at 7 days;
// the server rejects longer ones, so no client-side check is duplicated
// here. Records are returned flattened in ascending date order.
func (c *Client) Feed(ctx context.Context, start, end time.Time) ([]asteroid.RawRecord, error) {
	q := url.Values{}
	q.Set("start_date", start.Format(dateFormat))
	q.Set("end_date", end.Format(dateFormat))
	q.Set("api_key", c.apiKey)

	var resp feedResponse
	if err := c.get(ctx, "/feed", q, &resp); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(resp.NearEarthObjects))
	for date := range resp.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var records []asteroid.RawRecord
	for _, date := range dates {
		records = append(records, resp.NearEarthObjects[date]...)
	}

	c.logger.Debug().
		Str("start", start.Format(dateFormat)).
		Str("end", end.Format(dateFormat)).
		Int("records", len(records)).
		Msg("neows feed fetched")

	return records, nil
}

// Lookup fetches a single record by its NeoWs id. The lookup shape carries
// the full approach history and orbital data.
func (c *Client) Lookup(ctx context.Context, id string) (*asteroid.RawRecord, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)

	var record asteroid.RawRecord
	if err := c.get(ctx, "/neo/"+url.PathEscape(id), q, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Browse fetches one page of the full catalog.
func (c *Client) Browse(ctx context.Context, page, size int) ([]asteroid.RawRecord, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	q.Set("api_key", c.apiKey)

	var resp browseResponse
	if err := c.get(ctx, "/neo/browse", q, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", page).
		Int("records", len(resp.NearEarthObjects)).
		Msg("neows browse fetched")

	return resp.NearEarthObjects, nil
}

// get performs a GET against the API and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return asteroid.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// NeoWs API response structures. The feed keys records by approach date;
// browse wraps a flat page.

type feedResponse struct {
	ElementCount     int                               `json:"element_count"`
	NearEarthObjects map[string][]asteroid.RawRecord   `json:"near_earth_objects"`
}

type browseResponse struct {
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"total_elements"`
		TotalPages    int `json:"total_pages"`
		Number        int `json:"number"`
	} `json:"page"`
	NearEarthObjects []asteroid.RawRecord `json:"near_earth_objects"`
}
