package models

import "time"

// ProblemLog is the current review state for one (user, problem) pair.
// There is at most one row per pair; logging the same problem again
// overwrites difficulty, dates and the tag snapshot.
type ProblemLog struct {
	UserID         string    `json:"user_id" db:"user_id"`
	Slug           string    `json:"slug" db:"slug"`
	Title          string    `json:"title" db:"title"`
	Difficulty     int       `json:"difficulty" db:"difficulty"` // user's 1-5 self-rating
	DateSolved     time.Time `json:"date_solved" db:"date_solved"`
	NextReviewDate time.Time `json:"next_review_date" db:"next_review_date"`
	Tags           Tags      `json:"tags" db:"tags"`
}

// ReviewItem is a log row joined with the problem's current catalog tags,
// as returned by the review queries.
type ReviewItem struct {
	UserID         string    `json:"user_id" db:"user_id"`
	Slug           string    `json:"slug" db:"slug"`
	Title          string    `json:"title" db:"title"`
	Difficulty     int       `json:"difficulty" db:"difficulty"`
	DateSolved     time.Time `json:"date_solved" db:"date_solved"`
	NextReviewDate time.Time `json:"next_review_date" db:"next_review_date"`
	Tags           Tags      `json:"tags" db:"tags"`
}

// UserProblem is a log row joined with its full catalog entry, as returned
// by the all-problems listing. Tags holds the snapshot taken at log time,
// falling back to the catalog tags when the snapshot is empty.
type UserProblem struct {
	Slug               string    `json:"slug" db:"slug"`
	Title              string    `json:"title" db:"title"`
	Difficulty         int       `json:"difficulty" db:"difficulty"`
	DateSolved         time.Time `json:"date_solved" db:"date_solved"`
	NextReviewDate     time.Time `json:"next_review_date" db:"next_review_date"`
	Tags               Tags      `json:"tags" db:"tags"`
	OfficialDifficulty string    `json:"official_difficulty" db:"official_difficulty"`
	OfficialTags       Tags      `json:"-" db:"official_tags"`
}
