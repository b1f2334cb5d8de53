package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/pkg/models"
)

// fakeStore implements Store in memory. InTx simply runs fn against the
// fake and records whether the "transaction" committed.
type fakeStore struct {
	problems    map[string]*models.Problem
	logs        map[string]*models.ProblemLog // keyed user|slug
	solvedDates []string
	due         []models.ReviewItem
	nextUp      *models.ReviewItem
	all         []models.UserProblem

	failUpsert error
	upserts    int
	commits    int
	rollbacks  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		problems: map[string]*models.Problem{},
		logs:     map[string]*models.ProblemLog{},
	}
}

func (f *fakeStore) FindProblem(_ context.Context, slug string) (*models.Problem, error) {
	return f.problems[slug], nil
}

func (f *fakeStore) ProblemTags(_ context.Context, slug string) (models.Tags, error) {
	if p := f.problems[slug]; p != nil {
		return p.Tags, nil
	}
	return models.Tags{}, nil
}

func (f *fakeStore) LastLog(_ context.Context, userID, slug string) (*models.ProblemLog, error) {
	return f.logs[userID+"|"+slug], nil
}

func (f *fakeStore) UpsertLog(_ context.Context, entry *models.ProblemLog) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.upserts++
	f.logs[entry.UserID+"|"+entry.Slug] = entry
	return nil
}

func (f *fakeStore) DueReviews(_ context.Context, _ string, _ time.Time) ([]models.ReviewItem, error) {
	return f.due, nil
}

func (f *fakeStore) NextUpcoming(_ context.Context, _ string) (*models.ReviewItem, error) {
	return f.nextUp, nil
}

func (f *fakeStore) AllForUser(_ context.Context, _ string) ([]models.UserProblem, error) {
	return f.all, nil
}

func (f *fakeStore) SolvedDates(_ context.Context, _ string) ([]string, error) {
	return f.solvedDates, nil
}

func (f *fakeStore) Catalog(_ context.Context) ([]models.Problem, error) {
	out := []models.Problem{}
	for _, p := range f.problems {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) InTx(_ context.Context, fn func(q Queries) error) error {
	if err := fn(f); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, logger.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestLogProblem_FirstTime(t *testing.T) {
	store := newFakeStore()
	store.problems["two-sum"] = &models.Problem{
		Slug:  "two-sum",
		Title: "Two Sum",
		Tags:  models.Tags{"array", "hash-table"},
	}
	svc := newTestService(store)

	result, err := svc.LogProblem(context.Background(), "user-1", "two-sum", "Two Sum", 1)
	require.NoError(t, err)

	assert.Equal(t, "Two Sum logged!", result.Message)
	assert.Equal(t, testNow.AddDate(0, 0, 8).Format("2006-01-02"), result.NextReview)

	entry := store.logs["user-1|two-sum"]
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Difficulty)
	assert.Equal(t, testNow, entry.DateSolved)
	assert.Equal(t, models.Tags{"array", "hash-table"}, entry.Tags)
	assert.Equal(t, 1, store.commits)
}

func TestLogProblem_RepeatUsesPriorDate(t *testing.T) {
	store := newFakeStore()
	store.problems["two-sum"] = &models.Problem{Slug: "two-sum", Title: "Two Sum"}
	store.logs["user-1|two-sum"] = &models.ProblemLog{
		UserID:     "user-1",
		Slug:       "two-sum",
		Difficulty: 2,
		DateSolved: testNow.AddDate(0, 0, -10),
	}
	svc := newTestService(store)

	result, err := svc.LogProblem(context.Background(), "user-1", "two-sum", "Two Sum", 3)
	require.NoError(t, err)

	// floor(10 * 0.9) = 9 days out.
	assert.Equal(t, testNow.AddDate(0, 0, 9).Format("2006-01-02"), result.NextReview)

	// Still exactly one record for the pair, carrying the second call's values.
	require.Len(t, store.logs, 1)
	assert.Equal(t, 3, store.logs["user-1|two-sum"].Difficulty)
	assert.Equal(t, testNow, store.logs["user-1|two-sum"].DateSolved)
}

func TestLogProblem_InvalidDifficulty(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	for _, difficulty := range []int{0, 6} {
		_, err := svc.LogProblem(context.Background(), "user-1", "two-sum", "Two Sum", difficulty)
		assert.ErrorIs(t, err, ErrInvalidDifficulty)
	}
	// Rejected before any store access.
	assert.Equal(t, 0, store.commits+store.rollbacks)
}

func TestLogProblem_UnknownSlug(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.LogProblem(context.Background(), "user-1", "no-such-problem", "Nope", 3)
	assert.ErrorIs(t, err, ErrProblemNotFound)
	assert.Equal(t, 0, store.upserts)
	assert.Equal(t, 1, store.rollbacks)
}

func TestLogProblem_StoreFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.problems["two-sum"] = &models.Problem{Slug: "two-sum", Title: "Two Sum"}
	store.failUpsert = errors.New("connection reset")
	svc := newTestService(store)

	_, err := svc.LogProblem(context.Background(), "user-1", "two-sum", "Two Sum", 3)
	require.Error(t, err)
	assert.Equal(t, 1, store.rollbacks)
	assert.Equal(t, 0, store.commits)
}

func TestTodaysReviews_Due(t *testing.T) {
	store := newFakeStore()
	store.due = []models.ReviewItem{{Slug: "two-sum", Title: "Two Sum"}}
	store.nextUp = &models.ReviewItem{Slug: "ignored"}
	svc := newTestService(store)

	result, err := svc.TodaysReviews(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, result.ReviewsDue, 1)
	assert.Nil(t, result.NextUp)
}

func TestTodaysReviews_NextUpWhenNothingDue(t *testing.T) {
	store := newFakeStore()
	store.nextUp = &models.ReviewItem{Slug: "two-sum", Title: "Two Sum"}
	svc := newTestService(store)

	result, err := svc.TodaysReviews(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, result.ReviewsDue)
	require.NotNil(t, result.NextUp)
	assert.Equal(t, "two-sum", result.NextUp.Slug)
}

func TestTodaysReviews_NoRecords(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	result, err := svc.TodaysReviews(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, result.ReviewsDue)
	assert.Nil(t, result.NextUp)
}

func TestAllProblems_TagFallback(t *testing.T) {
	store := newFakeStore()
	store.all = []models.UserProblem{
		{Slug: "a", Tags: models.Tags{"dp"}, OfficialTags: models.Tags{"graph"}},
		{Slug: "b", Tags: models.Tags{}, OfficialTags: models.Tags{"graph"}},
		{Slug: "c"},
	}
	svc := newTestService(store)

	items, err := svc.AllProblems(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.Tags{"dp"}, items[0].Tags)
	assert.Equal(t, models.Tags{"graph"}, items[1].Tags)
	assert.Equal(t, models.Tags{}, items[2].Tags)
}

func TestCurrentStreak_Service(t *testing.T) {
	store := newFakeStore()
	store.solvedDates = []string{
		testNow.Format(time.RFC3339),
		testNow.AddDate(0, 0, -1).Format(time.RFC3339),
	}
	svc := newTestService(store)

	streak, err := svc.CurrentStreak(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreak_BadStoredDate(t *testing.T) {
	store := newFakeStore()
	store.solvedDates = []string{"garbage"}
	svc := newTestService(store)

	_, err := svc.CurrentStreak(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
