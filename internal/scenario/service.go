package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service manages saved scenarios over a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a scenario service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get retrieves a scenario by ID.
func (s *Service) Get(ctx context.Context, id string) (*Scenario, error) {
	return s.repo.Get(ctx, id)
}

// List retrieves a page of scenarios, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.repo.List(ctx, opts)
}

// Create validates and stores a new scenario. The ID and timestamps are
// assigned here; anything the caller set in those fields is overwritten.
func (s *Service) Create(ctx context.Context, sc *Scenario) (*Scenario, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sc.ID = uuid.New().String()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// Update validates and replaces an existing scenario. CreatedAt is
// preserved from the stored record.
func (s *Service) Update(ctx context.Context, sc *Scenario) (*Scenario, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, sc.ID)
	if err != nil {
		return nil, err
	}

	sc.CreatedAt = existing.CreatedAt
	sc.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// Delete removes a scenario by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
