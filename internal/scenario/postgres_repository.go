package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL scenario repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const scenarioColumns = `
	id, label, asteroid_id, asteroid_name,
	impact_lat, impact_lng,
	diameter_meters, velocity_km_per_sec, density_kg_m3, angle_degrees,
	ocean_impact, notes, created_at, updated_at
`

// Get retrieves a scenario by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id = $1`

	var s Scenario
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Label, &s.AsteroidID, &s.AsteroidName,
		&s.ImpactLat, &s.ImpactLng,
		&s.DiameterMeters, &s.VelocityKmPerSec, &s.DensityKgM3, &s.AngleDegrees,
		&s.OceanImpact, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scenario: %w", err)
	}

	return &s, nil
}

// List retrieves scenarios newest first with cursor pagination. The cursor
// is the last returned scenario ID; creation time is tiebroken by ID so
// pagination is stable.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + scenarioColumns + ` FROM scenarios`
	args := []any{}

	if opts.Cursor != "" {
		query += `
			WHERE (created_at, id) < (
				SELECT created_at, id FROM scenarios WHERE id = $1
			)`
		args = append(args, opts.Cursor)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %d", limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var items []*Scenario
	for rows.Next() {
		var s Scenario
		if err := rows.Scan(
			&s.ID, &s.Label, &s.AsteroidID, &s.AsteroidName,
			&s.ImpactLat, &s.ImpactLng,
			&s.DiameterMeters, &s.VelocityKmPerSec, &s.DensityKgM3, &s.AngleDegrees,
			&s.OceanImpact, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		items = append(items, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	result := &ListResult{Items: items}
	if len(items) > limit {
		result.Items = items[:limit]
		result.NextCursor = items[limit-1].ID
	}

	return result, nil
}

// Create stores a new scenario.
func (r *PostgresRepository) Create(ctx context.Context, s *Scenario) error {
	query := `
		INSERT INTO scenarios (` + scenarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Label, s.AsteroidID, s.AsteroidName,
		s.ImpactLat, s.ImpactLng,
		s.DiameterMeters, s.VelocityKmPerSec, s.DensityKgM3, s.AngleDegrees,
		s.OceanImpact, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create scenario: %w", err)
	}

	return nil
}

// Update replaces an existing scenario.
func (r *PostgresRepository) Update(ctx context.Context, s *Scenario) error {
	query := `
		UPDATE scenarios SET
			label = $2, asteroid_id = $3, asteroid_name = $4,
			impact_lat = $5, impact_lng = $6,
			diameter_meters = $7, velocity_km_per_sec = $8,
			density_kg_m3 = $9, angle_degrees = $10,
			ocean_impact = $11, notes = $12, updated_at = $13
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		s.ID, s.Label, s.AsteroidID, s.AsteroidName,
		s.ImpactLat, s.ImpactLng,
		s.DiameterMeters, s.VelocityKmPerSec, s.DensityKgM3, s.AngleDegrees,
		s.OceanImpact, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a scenario by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
