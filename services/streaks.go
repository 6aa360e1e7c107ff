// services/streaks.go - Consecutive-Day Reading Streaks
package services

import (
	"sort"
	"time"

	"readrise/models"
)

// StreakSummary holds the consecutive-day streak counts for a user.
// Current is 0 unless the user read today; an unbroken run that ended
// yesterday is not a current streak.
type StreakSummary struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Day boundaries use the UTC calendar date, both for bucketing session
// timestamps and for "today". This matches how session timestamps are stored
// (NowFunc is UTC) and keeps the streak math independent of the viewer's
// timezone.

// CalculateStreaks computes current and longest consecutive-day streaks from
// a set of reading sessions. Incomplete sessions are ignored.
func CalculateStreaks(sessions []models.ReadingSession) StreakSummary {
	return CalculateStreaksAt(sessions, time.Now().UTC())
}

// CalculateStreaksAt is CalculateStreaks anchored at an explicit reference
// time. "Today" is the UTC date of now.
func CalculateStreaksAt(sessions []models.ReadingSession, now time.Time) StreakSummary {
	days := distinctReadingDays(sessions)
	if len(days) == 0 {
		return StreakSummary{}
	}

	summary := StreakSummary{Longest: 1}

	// Longest: scan adjacent days, a gap of exactly one day extends the run.
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > summary.Longest {
				summary.Longest = run
			}
		} else {
			run = 1
		}
	}

	// Current: only counts if the most recent reading day is today.
	today := now.UTC().Truncate(24 * time.Hour)
	if days[len(days)-1].Equal(today) {
		summary.Current = 1
		for i := len(days) - 1; i > 0; i-- {
			if days[i].Sub(days[i-1]) != 24*time.Hour {
				break
			}
			summary.Current++
		}
	}

	return summary
}

// distinctReadingDays reduces completed sessions to their distinct UTC
// calendar dates, sorted ascending.
func distinctReadingDays(sessions []models.ReadingSession) []time.Time {
	seen := make(map[time.Time]bool)
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		day := session.StartedAt.UTC().Truncate(24 * time.Hour)
		seen[day] = true
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days
}
