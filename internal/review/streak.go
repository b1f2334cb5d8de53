package review

import (
	"fmt"
	"time"
)

// CurrentStreak counts the consecutive UTC calendar days, ending today, on
// which at least one of the given timestamps falls. Returns 0 for an empty
// input or when nothing was solved today.
func CurrentStreak(solvedAt []time.Time) int {
	return currentStreakOn(solvedAt, time.Now().UTC())
}

func currentStreakOn(solvedAt []time.Time, today time.Time) int {
	days := make(map[string]struct{}, len(solvedAt))
	for _, ts := range solvedAt {
		days[ts.UTC().Format("2006-01-02")] = struct{}{}
	}

	streak := 0
	day := today.UTC()
	for {
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// ParseSolvedDates converts ISO-8601 timestamps into time values for
// CurrentStreak. Any unparsable entry is a caller input error.
func ParseSolvedDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
		}
		out = append(out, ts)
	}
	return out, nil
}
