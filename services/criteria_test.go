package services

import (
	"testing"
	"time"

	"readrise/models"
)

func completedSession(minutes int) models.ReadingSession {
	seconds := minutes * 60
	return models.ReadingSession{
		UserID:         1,
		BookID:         1,
		StartedAt:      time.Now().UTC(),
		ActualDuration: &seconds,
		Completed:      true,
	}
}

func TestEvaluateCriteria_SessionCount(t *testing.T) {
	data := evalData{
		sessions: []models.ReadingSession{
			completedSession(10), completedSession(20), completedSession(30),
		},
	}

	current, skip, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaSessionCount}, data)
	if err != nil || skip {
		t.Fatalf("unexpected skip=%v err=%v", skip, err)
	}
	if current != 3 {
		t.Errorf("expected 3, got %v", current)
	}
}

func TestEvaluateCriteria_SingleSessionMinutesUsesTrigger(t *testing.T) {
	trigger := completedSession(45)
	data := evalData{
		sessions: []models.ReadingSession{completedSession(5), trigger},
		trigger:  &trigger,
	}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaSingleSessionMinutes}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 45 {
		t.Errorf("expected 45, got %v", current)
	}
}

func TestEvaluateCriteria_SingleSessionMinutesFallsBackToLatest(t *testing.T) {
	older := completedSession(90)
	older.StartedAt = older.StartedAt.Add(-2 * time.Hour)
	newest := completedSession(25)

	data := evalData{sessions: []models.ReadingSession{older, newest}}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaSingleSessionMinutes}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 25 {
		t.Errorf("expected most recent session's 25 minutes, got %v", current)
	}
}

func TestEvaluateCriteria_SingleSessionMinutesNoSessions(t *testing.T) {
	current, skip, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaSingleSessionMinutes}, evalData{})
	if err != nil || skip {
		t.Fatalf("unexpected skip=%v err=%v", skip, err)
	}
	if current != 0 {
		t.Errorf("expected 0, got %v", current)
	}
}

func TestEvaluateCriteria_TotalReadingMinutes(t *testing.T) {
	data := evalData{
		sessions: []models.ReadingSession{completedSession(30), completedSession(31)},
	}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaTotalReadingMinutes}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 61 {
		t.Errorf("expected 61, got %v", current)
	}
}

func TestEvaluateCriteria_TotalReadingMinutesTruncatesSeconds(t *testing.T) {
	ninety := 90 // 1.5 minutes
	data := evalData{
		sessions: []models.ReadingSession{{
			StartedAt:      time.Now().UTC(),
			ActualDuration: &ninety,
			Completed:      true,
		}},
	}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaTotalReadingMinutes}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 1 {
		t.Errorf("expected 1 (whole minutes), got %v", current)
	}
}

func TestEvaluateCriteria_BooksCompleted(t *testing.T) {
	data := evalData{
		books: []models.Book{
			{ReadingStatus: models.StatusFinished},
			{ReadingStatus: models.StatusCurrentlyReading},
			{ReadingStatus: models.StatusFinished},
			{ReadingStatus: models.StatusWantToRead},
		},
	}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaBooksCompleted}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 2 {
		t.Errorf("expected 2, got %v", current)
	}
}

func TestEvaluateCriteria_ConsecutiveDays(t *testing.T) {
	data := evalData{streak: StreakSummary{Current: 5, Longest: 9}}

	current, _, err := evaluateCriteria(models.Achievement{CriteriaType: models.CriteriaConsecutiveDays}, data)
	if err != nil {
		t.Fatal(err)
	}
	if current != 5 {
		t.Errorf("consecutive_days must use the current streak, got %v", current)
	}
}

func TestEvaluateCriteria_ReservedKindsSkip(t *testing.T) {
	for _, kind := range []string{models.CriteriaPagesRead, models.CriteriaGoalComplete} {
		_, skip, err := evaluateCriteria(models.Achievement{CriteriaType: kind}, evalData{})
		if err != nil {
			t.Errorf("%s: unexpected error %v", kind, err)
		}
		if !skip {
			t.Errorf("%s: expected skip", kind)
		}
	}
}

func TestEvaluateCriteria_UnknownKind(t *testing.T) {
	_, _, err := evaluateCriteria(models.Achievement{CriteriaType: "galaxy_brain"}, evalData{})
	if err == nil {
		t.Error("expected an error for an unknown criteria type")
	}
}
