// services/criteria.go - Achievement Criteria Evaluators
package services

import (
	"fmt"

	"readrise/models"
)

// evalData is the single snapshot every evaluator reads from. It is built
// once per engine pass so an achievement's unlock check and its progress
// write always see the same values.
type evalData struct {
	sessions []models.ReadingSession // completed only
	books    []models.Book
	trigger  *models.ReadingSession // session that prompted this pass, may be nil
	streak   StreakSummary
}

// evaluateCriteria returns the current metric value for an achievement's
// criteria kind. skip is true for reserved kinds that are defined but not
// evaluated yet. An unknown kind is an error so a malformed catalog row is
// logged instead of silently treated as met or unmet.
func evaluateCriteria(achievement models.Achievement, data evalData) (current float64, skip bool, err error) {
	switch achievement.CriteriaType {
	case models.CriteriaSessionCount:
		return float64(len(data.sessions)), false, nil

	case models.CriteriaSingleSessionMinutes:
		session := data.trigger
		if session == nil {
			session = mostRecentSession(data.sessions)
		}
		if session == nil || session.ActualDuration == nil {
			return 0, false, nil
		}
		return float64(*session.ActualDuration / 60), false, nil

	case models.CriteriaTotalReadingMinutes:
		totalSeconds := 0
		for _, session := range data.sessions {
			if session.ActualDuration != nil {
				totalSeconds += *session.ActualDuration
			}
		}
		return float64(totalSeconds / 60), false, nil

	case models.CriteriaBooksCompleted:
		finished := 0
		for _, book := range data.books {
			if book.ReadingStatus == models.StatusFinished {
				finished++
			}
		}
		return float64(finished), false, nil

	case models.CriteriaConsecutiveDays:
		return float64(data.streak.Current), false, nil

	case models.CriteriaPagesRead, models.CriteriaGoalComplete:
		// Reserved kinds: skip silently until page tracking and goals exist.
		return 0, true, nil

	default:
		return 0, false, fmt.Errorf("unknown criteria type %q", achievement.CriteriaType)
	}
}

// mostRecentSession returns the completed session with the latest start time.
func mostRecentSession(sessions []models.ReadingSession) *models.ReadingSession {
	var latest *models.ReadingSession
	for i := range sessions {
		if latest == nil || sessions[i].StartedAt.After(latest.StartedAt) {
			latest = &sessions[i]
		}
	}
	return latest
}
