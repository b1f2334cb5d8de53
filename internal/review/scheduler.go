package review

import (
	"fmt"
	"time"
)

// Scheduling tables. Easier problems wait longer before the first review
// and grow their interval faster on repeats; harder problems resurface
// sooner and more often.
var (
	initialOffsetDays = map[int]int{1: 8, 2: 6, 3: 4, 4: 2, 5: 1}
	repeatMultiplier  = map[int]float64{1: 0.5, 2: 0.7, 3: 0.9, 4: 1.2, 5: 1.5}
)

// maxGapDays caps the repeat interval.
const maxGapDays = 90

// NextReviewDate computes when a problem should next be presented for
// review, given the user's 1-5 difficulty rating and the previous review
// time (nil when the problem has never been logged). Evaluated against the
// current UTC instant.
func NextReviewDate(difficulty int, lastReview *time.Time) (time.Time, error) {
	return nextReviewDateAt(difficulty, lastReview, time.Now().UTC())
}

// nextReviewDateAt is NextReviewDate against an explicit clock.
//
// The repeat interval multiplies the observed elapsed time by the
// difficulty multiplier rather than applying an ease factor to the previous
// interval, so a long-overdue easy problem gets pushed even further out
// (capped at maxGapDays). That is intentional scheduling policy.
func nextReviewDateAt(difficulty int, lastReview *time.Time, now time.Time) (time.Time, error) {
	if difficulty < 1 || difficulty > 5 {
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, difficulty)
	}

	if lastReview == nil {
		return now.AddDate(0, 0, initialOffsetDays[difficulty]), nil
	}

	daysSinceLast := int(now.Sub(*lastReview).Hours() / 24)
	if daysSinceLast < 0 {
		daysSinceLast = 0 // clock skew
	}

	gap := int(float64(daysSinceLast) * repeatMultiplier[difficulty])
	if gap < 1 {
		gap = 1
	}
	if gap > maxGapDays {
		gap = maxGapDays
	}
	return now.AddDate(0, 0, gap), nil
}
