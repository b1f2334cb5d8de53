package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/codereps/pkg/models"
)

// FindProblem returns the catalog entry for slug, or nil when unknown.
func (s *Store) FindProblem(ctx context.Context, slug string) (*models.Problem, error) {
	var p models.Problem
	err := s.q.GetContext(ctx, &p,
		"SELECT slug, title, official_difficulty, tags FROM problems WHERE slug = $1", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find problem: %w", err)
	}
	return &p, nil
}

// ProblemTags returns the catalog tags for slug, normalized to a list.
// An unknown slug yields an empty list.
func (s *Store) ProblemTags(ctx context.Context, slug string) (models.Tags, error) {
	var tags models.Tags
	err := s.q.GetContext(ctx, &tags, "SELECT tags FROM problems WHERE slug = $1", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tags{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem tags: %w", err)
	}
	return tags, nil
}

// Catalog returns every problem in the catalog.
func (s *Store) Catalog(ctx context.Context) ([]models.Problem, error) {
	problems := []models.Problem{}
	err := s.q.SelectContext(ctx, &problems,
		"SELECT slug, title, official_difficulty, tags FROM problems ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return problems, nil
}

// UpsertProblem creates or refreshes a catalog entry. Used by the importer;
// the catalog is read-only everywhere else.
func (s *Store) UpsertProblem(ctx context.Context, p *models.Problem) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO problems (slug, title, official_difficulty, tags)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			official_difficulty = EXCLUDED.official_difficulty,
			tags = EXCLUDED.tags
	`, p.Slug, p.Title, p.OfficialDifficulty, p.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert problem: %w", err)
	}
	return nil
}
