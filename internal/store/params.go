package store

import (
	"context"
	"fmt"

	"github.com/pulseline/scribe/internal/matcher"
)

// ListParamTargets returns the full reference corpus. Implements
// matcher.CorpusSource.
func (s *Store) ListParamTargets(ctx context.Context) ([]matcher.ParamTarget, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT param_code, target_min, target_max, preferred_unit, description, notes, organ_system
		FROM param_targets
		ORDER BY param_code`)
	if err != nil {
		return nil, fmt.Errorf("query param targets: %w", err)
	}
	defer rows.Close()

	var targets []matcher.ParamTarget
	for rows.Next() {
		var t matcher.ParamTarget
		if err := rows.Scan(&t.Code, &t.TargetMin, &t.TargetMax, &t.PreferredUnit, &t.Description, &t.Notes, &t.OrganSystem); err != nil {
			return nil, fmt.Errorf("scan param target: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return targets, nil
}

// GetParamTarget fetches one corpus row by code.
func (s *Store) GetParamTarget(ctx context.Context, code string) (*matcher.ParamTarget, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT param_code, target_min, target_max, preferred_unit, description, notes, organ_system
		FROM param_targets WHERE param_code = $1`, code)

	var t matcher.ParamTarget
	err := row.Scan(&t.Code, &t.TargetMin, &t.TargetMax, &t.PreferredUnit, &t.Description, &t.Notes, &t.OrganSystem)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertParamTarget creates or replaces one corpus row. Operator-only: the
// interpretation pipeline never mutates the corpus.
func (s *Store) UpsertParamTarget(ctx context.Context, t matcher.ParamTarget) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO param_targets (param_code, target_min, target_max, preferred_unit, description, notes, organ_system, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (param_code)
		DO UPDATE SET
			target_min = $2,
			target_max = $3,
			preferred_unit = $4,
			description = $5,
			notes = $6,
			organ_system = $7,
			updated_at = now()`,
		t.Code, t.TargetMin, t.TargetMax, t.PreferredUnit, t.Description, t.Notes, t.OrganSystem,
	)
	if err != nil {
		return fmt.Errorf("upsert param target: %w", err)
	}
	return nil
}

// SeedParamTargets inserts the built-in corpus when the table is empty.
// Returns the number of rows inserted (0 when already seeded).
func (s *Store) SeedParamTargets(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM param_targets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count param targets: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, t := range DefaultParamTargets {
		if err := s.UpsertParamTarget(ctx, t); err != nil {
			return 0, fmt.Errorf("seed %s: %w", t.Code, err)
		}
	}
	return len(DefaultParamTargets), nil
}
