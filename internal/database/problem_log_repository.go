package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/codereps/pkg/models"
)

// LastLog returns the user's current log row for slug, or nil when the
// problem has never been logged. At most one row exists per (user, slug).
func (s *Store) LastLog(ctx context.Context, userID, slug string) (*models.ProblemLog, error) {
	var entry models.ProblemLog
	err := s.q.GetContext(ctx, &entry, `
		SELECT user_id, slug, title, difficulty, date_solved, next_review_date, tags
		FROM user_problems
		WHERE user_id = $1 AND slug = $2
	`, userID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem log: %w", err)
	}
	return &entry, nil
}

// UpsertLog writes the (user, slug) row, overwriting any previous log for
// the pair. The write is atomic on the composite key; two concurrent calls
// leave exactly one row with the last committed values.
func (s *Store) UpsertLog(ctx context.Context, entry *models.ProblemLog) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO user_problems (
			user_id, slug, title, difficulty, date_solved, next_review_date, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, slug) DO UPDATE SET
			title = EXCLUDED.title,
			difficulty = EXCLUDED.difficulty,
			date_solved = EXCLUDED.date_solved,
			next_review_date = EXCLUDED.next_review_date,
			tags = EXCLUDED.tags
	`, entry.UserID, entry.Slug, entry.Title, entry.Difficulty,
		entry.DateSolved, entry.NextReviewDate, entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert problem log: %w", err)
	}
	return nil
}

// DueReviews returns every log row for the user with a next review date at
// or before cutoff, joined with the problem's current catalog tags.
func (s *Store) DueReviews(ctx context.Context, userID string, cutoff time.Time) ([]models.ReviewItem, error) {
	items := []models.ReviewItem{}
	err := s.q.SelectContext(ctx, &items, `
		SELECT up.user_id, up.slug, up.title, up.difficulty,
		       up.date_solved, up.next_review_date, p.tags
		FROM user_problems up
		JOIN problems p ON up.slug = p.slug
		WHERE up.user_id = $1 AND up.next_review_date <= $2
	`, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get due reviews: %w", err)
	}
	return items, nil
}

// NextUpcoming returns the user's log row with the smallest next review
// date, or nil when the user has no rows at all.
func (s *Store) NextUpcoming(ctx context.Context, userID string) (*models.ReviewItem, error) {
	var item models.ReviewItem
	err := s.q.GetContext(ctx, &item, `
		SELECT up.user_id, up.slug, up.title, up.difficulty,
		       up.date_solved, up.next_review_date, p.tags
		FROM user_problems up
		JOIN problems p ON up.slug = p.slug
		WHERE up.user_id = $1
		ORDER BY up.next_review_date ASC
		LIMIT 1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next upcoming review: %w", err)
	}
	return &item, nil
}

// AllForUser returns every log row for the user joined with its catalog
// entry, most recently solved first.
func (s *Store) AllForUser(ctx context.Context, userID string) ([]models.UserProblem, error) {
	items := []models.UserProblem{}
	err := s.q.SelectContext(ctx, &items, `
		SELECT up.slug, up.title, up.difficulty, up.date_solved,
		       up.next_review_date, up.tags,
		       p.official_difficulty, p.tags AS official_tags
		FROM user_problems up
		JOIN problems p ON up.slug = p.slug
		WHERE up.user_id = $1
		ORDER BY up.date_solved DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user problems: %w", err)
	}
	return items, nil
}

// SolvedDates returns the user's date_solved timestamps as ISO-8601 strings
// in UTC. SQLite and Postgres format timestamps differently, so each driver
// gets its own query.
func (s *Store) SolvedDates(ctx context.Context, userID string) ([]string, error) {
	var query string
	if s.driver == "sqlite3" {
		query = `
			SELECT strftime('%Y-%m-%dT%H:%M:%SZ', date_solved)
			FROM user_problems
			WHERE user_id = $1
			ORDER BY date_solved DESC
		`
	} else {
		query = `
			SELECT to_char(date_solved, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
			FROM user_problems
			WHERE user_id = $1
			ORDER BY date_solved DESC
		`
	}

	dates := []string{}
	if err := s.q.SelectContext(ctx, &dates, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get solved dates: %w", err)
	}
	return dates, nil
}

// DueReviewCount counts the user's reviews due at or before cutoff.
func (s *Store) DueReviewCount(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	var count int
	err := s.q.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM user_problems
		WHERE user_id = $1 AND next_review_date <= $2
	`, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count due reviews: %w", err)
	}
	return count, nil
}
