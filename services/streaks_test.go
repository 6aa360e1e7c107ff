package services

import (
	"testing"
	"time"

	"readrise/models"
)

var streakNow = time.Date(2025, 6, 15, 20, 30, 0, 0, time.UTC)

// sessionOnDay builds a completed session started daysAgo days before
// streakNow.
func sessionOnDay(daysAgo int) models.ReadingSession {
	duration := 1200
	return models.ReadingSession{
		UserID:         1,
		BookID:         1,
		StartedAt:      streakNow.AddDate(0, 0, -daysAgo),
		ActualDuration: &duration,
		Completed:      true,
	}
}

func TestCalculateStreaks_Empty(t *testing.T) {
	summary := CalculateStreaksAt(nil, streakNow)
	if summary.Current != 0 || summary.Longest != 0 {
		t.Errorf("expected {0 0}, got %+v", summary)
	}
}

func TestCalculateStreaks_SingleSessionToday(t *testing.T) {
	summary := CalculateStreaksAt([]models.ReadingSession{sessionOnDay(0)}, streakNow)
	if summary.Current != 1 {
		t.Errorf("expected current 1, got %d", summary.Current)
	}
	if summary.Longest != 1 {
		t.Errorf("expected longest 1, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_SingleSessionYesterday(t *testing.T) {
	summary := CalculateStreaksAt([]models.ReadingSession{sessionOnDay(1)}, streakNow)
	if summary.Current != 0 {
		t.Errorf("a streak that does not include today is not current, got %d", summary.Current)
	}
	if summary.Longest != 1 {
		t.Errorf("expected longest 1, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_SevenConsecutiveDaysEndingToday(t *testing.T) {
	var sessions []models.ReadingSession
	for day := 0; day < 7; day++ {
		sessions = append(sessions, sessionOnDay(day))
	}

	summary := CalculateStreaksAt(sessions, streakNow)
	if summary.Current != 7 {
		t.Errorf("expected current 7, got %d", summary.Current)
	}
	if summary.Longest != 7 {
		t.Errorf("expected longest 7, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_SixDaysEndingYesterday(t *testing.T) {
	var sessions []models.ReadingSession
	for day := 1; day <= 6; day++ {
		sessions = append(sessions, sessionOnDay(day))
	}

	summary := CalculateStreaksAt(sessions, streakNow)
	if summary.Current != 0 {
		t.Errorf("expected current 0, got %d", summary.Current)
	}
	if summary.Longest != 6 {
		t.Errorf("expected longest 6, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_GapSplitsRun(t *testing.T) {
	// Two runs separated by a missed day: [-4,-3] then [-1, today].
	sessions := []models.ReadingSession{
		sessionOnDay(4), sessionOnDay(3),
		sessionOnDay(1), sessionOnDay(0),
	}

	summary := CalculateStreaksAt(sessions, streakNow)
	if summary.Current != 2 {
		t.Errorf("expected current 2, got %d", summary.Current)
	}
	if summary.Longest != 2 {
		t.Errorf("expected longest 2, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_MultipleSessionsSameDay(t *testing.T) {
	morning := sessionOnDay(0)
	evening := sessionOnDay(0)
	evening.StartedAt = evening.StartedAt.Add(-8 * time.Hour)

	summary := CalculateStreaksAt([]models.ReadingSession{morning, evening}, streakNow)
	if summary.Current != 1 {
		t.Errorf("same-day sessions must count once, got current %d", summary.Current)
	}
	if summary.Longest != 1 {
		t.Errorf("expected longest 1, got %d", summary.Longest)
	}
}

func TestCalculateStreaks_IncompleteSessionsIgnored(t *testing.T) {
	incomplete := sessionOnDay(0)
	incomplete.Completed = false
	incomplete.ActualDuration = nil

	summary := CalculateStreaksAt([]models.ReadingSession{incomplete}, streakNow)
	if summary.Current != 0 || summary.Longest != 0 {
		t.Errorf("incomplete sessions must not count, got %+v", summary)
	}
}

func TestCalculateStreaks_LongestNeverBelowCurrent(t *testing.T) {
	cases := [][]models.ReadingSession{
		nil,
		{sessionOnDay(0)},
		{sessionOnDay(0), sessionOnDay(1), sessionOnDay(3)},
		{sessionOnDay(0), sessionOnDay(1), sessionOnDay(2), sessionOnDay(5), sessionOnDay(6)},
	}

	for i, sessions := range cases {
		summary := CalculateStreaksAt(sessions, streakNow)
		if summary.Longest < summary.Current {
			t.Errorf("case %d: longest %d < current %d", i, summary.Longest, summary.Current)
		}
	}
}

func TestCalculateStreaks_DoesNotMutateInput(t *testing.T) {
	sessions := []models.ReadingSession{sessionOnDay(2), sessionOnDay(0), sessionOnDay(1)}
	first := sessions[0].StartedAt

	CalculateStreaksAt(sessions, streakNow)

	if !sessions[0].StartedAt.Equal(first) {
		t.Error("input slice was mutated")
	}
}
