package asteroid

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// SnapshotProvider serves catalog records from a static JSON snapshot file
// instead of the remote API. The normalizer treats records from either
// source identically, so a snapshot is a drop-in offline catalog.
//
// The file may hold a bare record array, a feed-shaped object with records
// keyed by date, or a browse-shaped object with a record array.
type SnapshotProvider struct {
	records []RawRecord
	byID    map[string]RawRecord
}

// snapshotEnvelope matches both feed- and browse-shaped snapshot files.
type snapshotEnvelope struct {
	NearEarthObjects json.RawMessage `json:"near_earth_objects"`
}

// NewSnapshotProvider loads the snapshot at path.
func NewSnapshotProvider(path string) (*SnapshotProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return NewSnapshotProviderFromBytes(data)
}

// NewSnapshotProviderFromBytes builds a provider from snapshot JSON bytes.
func NewSnapshotProviderFromBytes(data []byte) (*SnapshotProvider, error) {
	records, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]RawRecord, len(records))
	for _, r := range records {
		if r.ID != "" {
			byID[r.ID] = r
		}
	}

	return &SnapshotProvider{records: records, byID: byID}, nil
}

func decodeSnapshot(data []byte) ([]RawRecord, error) {
	// Bare array first, then the enveloped shapes.
	var records []RawRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if env.NearEarthObjects == nil {
		return nil, fmt.Errorf("decoding snapshot: no near_earth_objects")
	}

	// Browse shape: a flat array.
	if err := json.Unmarshal(env.NearEarthObjects, &records); err == nil {
		return records, nil
	}

	// Feed shape: records keyed by approach date.
	var byDate map[string][]RawRecord
	if err := json.Unmarshal(env.NearEarthObjects, &byDate); err != nil {
		return nil, fmt.Errorf("decoding snapshot records: %w", err)
	}
	for _, day := range sortedKeys(byDate) {
		records = append(records, byDate[day]...)
	}
	return records, nil
}

// Name returns the provider name.
func (p *SnapshotProvider) Name() string {
	return "snapshot"
}

// Today returns the records whose first approach falls on the given day.
func (p *SnapshotProvider) Today(ctx context.Context, day time.Time) ([]RawRecord, error) {
	return p.Feed(ctx, day, day)
}

// Feed returns the records whose first approach date falls inside the
// window, inclusive. Records without an approach date are excluded from
// feeds (they remain reachable via Lookup and Browse).
func (p *SnapshotProvider) Feed(_ context.Context, start, end time.Time) ([]RawRecord, error) {
	startDay := start.Format("2006-01-02")
	endDay := end.Format("2006-01-02")

	var out []RawRecord
	for _, r := range p.records {
		if len(r.CloseApproaches) == 0 {
			continue
		}
		date := r.CloseApproaches[0].CloseApproachDate
		if date >= startDay && date <= endDay {
			out = append(out, r)
		}
	}
	return out, nil
}

// Lookup returns the record with the given id.
func (p *SnapshotProvider) Lookup(_ context.Context, id string) (*RawRecord, error) {
	r, ok := p.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// Browse returns one page of the snapshot in file order.
func (p *SnapshotProvider) Browse(_ context.Context, page, size int) ([]RawRecord, error) {
	if size <= 0 || page < 0 {
		return nil, nil
	}
	start := page * size
	if start >= len(p.records) {
		return nil, nil
	}
	end := start + size
	if end > len(p.records) {
		end = len(p.records)
	}
	return p.records[start:end], nil
}

// Len reports the snapshot size.
func (p *SnapshotProvider) Len() int {
	return len(p.records)
}

// sortedKeys returns the date keys ascending; ISO dates sort correctly as
// strings.
func sortedKeys(m map[string][]RawRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
