package review

import (
	"context"
	"fmt"
	"time"

	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/pkg/models"
)

// Queries is the slice of the persistence layer the review flows read and
// write. Absent rows come back as nil pointers, never as errors.
type Queries interface {
	FindProblem(ctx context.Context, slug string) (*models.Problem, error)
	ProblemTags(ctx context.Context, slug string) (models.Tags, error)
	LastLog(ctx context.Context, userID, slug string) (*models.ProblemLog, error)
	UpsertLog(ctx context.Context, entry *models.ProblemLog) error
	DueReviews(ctx context.Context, userID string, cutoff time.Time) ([]models.ReviewItem, error)
	NextUpcoming(ctx context.Context, userID string) (*models.ReviewItem, error)
	AllForUser(ctx context.Context, userID string) ([]models.UserProblem, error)
	SolvedDates(ctx context.Context, userID string) ([]string, error)
	Catalog(ctx context.Context) ([]models.Problem, error)
}

// Store is Queries plus scoped transactions. InTx commits when fn returns
// nil, rolls back otherwise, and releases the connection on every path.
type Store interface {
	Queries
	InTx(ctx context.Context, fn func(q Queries) error) error
}

// Service implements the logging and review-query flows on top of the store.
type Service struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("component", "review"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// LogResult confirms a logged problem. NextReview is a calendar date with
// no time component.
type LogResult struct {
	Message    string `json:"message"`
	NextReview string `json:"next_review"`
}

// LogProblem records that the user solved a problem and schedules its next
// review. Catalog lookup, prior-log fetch and the upsert run in a single
// transaction; validation failures happen before any store access.
func (s *Service) LogProblem(ctx context.Context, userID, slug, title string, difficulty int) (*LogResult, error) {
	if difficulty < 1 || difficulty > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, difficulty)
	}

	var result *LogResult
	err := s.store.InTx(ctx, func(q Queries) error {
		problem, err := q.FindProblem(ctx, slug)
		if err != nil {
			return err
		}
		if problem == nil {
			return fmt.Errorf("%w: %s", ErrProblemNotFound, slug)
		}

		tags, err := q.ProblemTags(ctx, slug)
		if err != nil {
			return err
		}

		prior, err := q.LastLog(ctx, userID, slug)
		if err != nil {
			return err
		}
		var lastReview *time.Time
		if prior != nil {
			lastReview = &prior.DateSolved
		}

		now := s.now()
		next, err := nextReviewDateAt(difficulty, lastReview, now)
		if err != nil {
			return err
		}

		entry := &models.ProblemLog{
			UserID:         userID,
			Slug:           slug,
			Title:          title,
			Difficulty:     difficulty,
			DateSolved:     now,
			NextReviewDate: next,
			Tags:           tags,
		}
		if err := q.UpsertLog(ctx, entry); err != nil {
			return err
		}

		result = &LogResult{
			Message:    fmt.Sprintf("%s logged!", title),
			NextReview: next.Format("2006-01-02"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("problem logged",
		"user_id", userID, "slug", slug, "next_review", result.NextReview)
	return result, nil
}

// TodaysReviews holds every review due by the end of the current UTC day.
// When nothing is due, NextUp carries the record with the smallest
// next-review date, if the user has any records at all.
type TodaysReviews struct {
	ReviewsDue []models.ReviewItem `json:"reviews_due"`
	NextUp     *models.ReviewItem  `json:"next_up,omitempty"`
}

// TodaysReviews answers "what is due today / what is next" for a user.
// Ordering within the due set is unspecified.
func (s *Service) TodaysReviews(ctx context.Context, userID string) (*TodaysReviews, error) {
	now := s.now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)

	result := &TodaysReviews{ReviewsDue: []models.ReviewItem{}}
	err := s.store.InTx(ctx, func(q Queries) error {
		due, err := q.DueReviews(ctx, userID, endOfDay)
		if err != nil {
			return err
		}
		if len(due) > 0 {
			result.ReviewsDue = due
			return nil
		}
		next, err := q.NextUpcoming(ctx, userID)
		if err != nil {
			return err
		}
		result.NextUp = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CurrentStreak computes the user's consecutive-day solve streak from their
// log timestamps.
func (s *Service) CurrentStreak(ctx context.Context, userID string) (int, error) {
	raw, err := s.store.SolvedDates(ctx, userID)
	if err != nil {
		return 0, err
	}
	solved, err := ParseSolvedDates(raw)
	if err != nil {
		return 0, err
	}
	return currentStreakOn(solved, s.now()), nil
}

// AllProblems lists every log row for the user joined with its catalog
// entry, most recently solved first. Rows whose tag snapshot is empty fall
// back to the catalog tags.
func (s *Service) AllProblems(ctx context.Context, userID string) ([]models.UserProblem, error) {
	items, err := s.store.AllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if len(items[i].Tags) == 0 {
			items[i].Tags = items[i].OfficialTags
		}
		if items[i].Tags == nil {
			items[i].Tags = models.Tags{}
		}
	}
	return items, nil
}

// ProblemBank returns the full read-only catalog.
func (s *Service) ProblemBank(ctx context.Context) ([]models.Problem, error) {
	return s.store.Catalog(ctx)
}
