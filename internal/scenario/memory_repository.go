package scenario

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory Repository for tests and local runs
// without a database.
type InMemoryRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*Scenario
}

// NewInMemoryRepository creates a new in-memory scenario repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		scenarios: make(map[string]*Scenario),
	}
}

// Get retrieves a scenario by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[id]
	if !ok {
		return nil, ErrNotFound
	}

	cpy := *s
	return &cpy, nil
}

// List retrieves scenarios newest first with cursor pagination. The cursor
// is the last returned scenario ID.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		cpy := *s
		all = append(all, &cpy)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := 0
	if opts.Cursor != "" {
		for i, s := range all {
			if s.ID == opts.Cursor {
				start = i + 1
				break
			}
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	result.Items = all[start:end]

	if end < len(all) && len(result.Items) > 0 {
		result.NextCursor = result.Items[len(result.Items)-1].ID
	}

	return result, nil
}

// Create stores a new scenario.
func (r *InMemoryRepository) Create(_ context.Context, s *Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *s
	r.scenarios[s.ID] = &cpy
	return nil
}

// Update replaces an existing scenario.
func (r *InMemoryRepository) Update(_ context.Context, s *Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenarios[s.ID]; !ok {
		return ErrNotFound
	}

	cpy := *s
	r.scenarios[s.ID] = &cpy
	return nil
}

// Delete removes a scenario by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenarios[id]; !ok {
		return ErrNotFound
	}

	delete(r.scenarios, id)
	return nil
}
