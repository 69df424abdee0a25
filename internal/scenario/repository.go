package scenario

import "context"

// ListOptions contains options for listing scenarios.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains one page of scenarios.
type ListResult struct {
	Items      []*Scenario
	NextCursor string
}

// Repository defines scenario persistence.
type Repository interface {
	// Get retrieves a scenario by ID; ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Scenario, error)

	// List retrieves scenarios ordered by creation time descending.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create stores a new scenario.
	Create(ctx context.Context, s *Scenario) error

	// Update replaces an existing scenario; ErrNotFound when absent.
	Update(ctx context.Context, s *Scenario) error

	// Delete removes a scenario by ID; ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
