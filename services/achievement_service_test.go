package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"readrise/models"
)

// fakeAchievementStore is an in-memory AchievementStore with per-method
// error injection. Unlike a real database it records every write so tests
// can assert on exactly what the engine asked for.
type fakeAchievementStore struct {
	mu sync.Mutex

	catalog  []models.Achievement
	unlocked []models.UserAchievement
	progress []models.AchievementProgress
	sessions []models.ReadingSession
	books    []models.Book

	catalogErr  error
	unlockedErr error
	progressErr error
	sessionsErr error
	booksErr    error

	// failUnlockFor makes InsertUnlock fail for specific achievement ids.
	failUnlockFor map[uint]bool

	insertedUnlocks []models.UserAchievement
	writtenProgress []models.AchievementProgress
}

func (f *fakeAchievementStore) GetAchievementCatalog(ctx context.Context) ([]models.Achievement, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeAchievementStore) GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	return f.unlocked, f.unlockedErr
}

func (f *fakeAchievementStore) GetAchievementProgress(ctx context.Context, userID uint) ([]models.AchievementProgress, error) {
	return f.progress, f.progressErr
}

func (f *fakeAchievementStore) GetRecentSessions(ctx context.Context, userID uint, limit int) ([]models.ReadingSession, error) {
	return f.sessions, f.sessionsErr
}

func (f *fakeAchievementStore) GetBooks(ctx context.Context, userID uint) ([]models.Book, error) {
	return f.books, f.booksErr
}

func (f *fakeAchievementStore) InsertUnlock(ctx context.Context, userID, achievementID uint) (*models.UserAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUnlockFor[achievementID] {
		return nil, errors.New("insert failed")
	}
	for _, record := range f.insertedUnlocks {
		if record.UserID == userID && record.AchievementID == achievementID {
			return nil, errors.New("duplicate unlock")
		}
	}

	record := models.UserAchievement{
		ID:            uint(len(f.insertedUnlocks) + 1),
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now().UTC(),
	}
	f.insertedUnlocks = append(f.insertedUnlocks, record)
	return &record, nil
}

func (f *fakeAchievementStore) WriteProgress(ctx context.Context, userID uint, achievementKey string, current, target float64) (*models.AchievementProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := models.AchievementProgress{
		UserID:          userID,
		AchievementKey:  achievementKey,
		CurrentProgress: current,
		TargetProgress:  target,
		LastUpdated:     time.Now().UTC(),
	}
	f.writtenProgress = append(f.writtenProgress, record)
	return &record, nil
}

// syncStoreState promotes the fake's recorded inserts into the datasets the
// next fetch returns, so back-to-back passes see their own writes.
func (f *fakeAchievementStore) syncStoreState() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocked = append([]models.UserAchievement(nil), f.insertedUnlocks...)
}

func catalogEntry(id uint, key, criteriaType string, target int) models.Achievement {
	return models.Achievement{
		ID:             id,
		Key:            key,
		Title:          key,
		CriteriaType:   criteriaType,
		CriteriaTarget: target,
		IsActive:       true,
	}
}

func sessionsOf(count, minutesEach int) []models.ReadingSession {
	sessions := make([]models.ReadingSession, 0, count)
	for i := 0; i < count; i++ {
		session := completedSession(minutesEach)
		session.StartedAt = session.StartedAt.Add(-time.Duration(i) * time.Hour)
		sessions = append(sessions, session)
	}
	return sessions
}

func TestCheckAllAchievements_UnlocksWhenTargetMet(t *testing.T) {
	store := &fakeAchievementStore{
		catalog: []models.Achievement{
			catalogEntry(1, "sessions_10", models.CriteriaSessionCount, 10),
			catalogEntry(2, "sessions_50", models.CriteriaSessionCount, 50),
		},
		sessions: sessionsOf(10, 20),
	}
	service := NewAchievementService(store)

	unlocked := service.CheckAllAchievements(context.Background(), 1, nil)

	if len(unlocked) != 1 {
		t.Fatalf("expected 1 unlock, got %d", len(unlocked))
	}
	if unlocked[0].AchievementID != 1 {
		t.Errorf("expected achievement 1, got %d", unlocked[0].AchievementID)
	}
	if unlocked[0].Achievement.Key != "sessions_10" {
		t.Errorf("unlock record should carry its catalog entry, got %q", unlocked[0].Achievement.Key)
	}
}

func TestCheckAllAchievements_BoundaryExactlyAtTarget(t *testing.T) {
	catalog := []models.Achievement{catalogEntry(1, "sessions_10", models.CriteriaSessionCount, 10)}

	nine := &fakeAchievementStore{catalog: catalog, sessions: sessionsOf(9, 20)}
	if got := NewAchievementService(nine).CheckAllAchievements(context.Background(), 1, nil); len(got) != 0 {
		t.Errorf("9 sessions must not unlock a target of 10, got %d unlocks", len(got))
	}

	ten := &fakeAchievementStore{catalog: catalog, sessions: sessionsOf(10, 20)}
	if got := NewAchievementService(ten).CheckAllAchievements(context.Background(), 1, nil); len(got) != 1 {
		t.Errorf("10 sessions must unlock a target of 10, got %d unlocks", len(got))
	}
}

func TestCheckAllAchievements_SecondPassUnlocksNothing(t *testing.T) {
	store := &fakeAchievementStore{
		catalog:  []models.Achievement{catalogEntry(1, "sessions_10", models.CriteriaSessionCount, 10)},
		sessions: sessionsOf(12, 20),
	}
	service := NewAchievementService(store)

	first := service.CheckAllAchievements(context.Background(), 1, nil)
	if len(first) != 1 {
		t.Fatalf("expected 1 unlock on the first pass, got %d", len(first))
	}

	store.syncStoreState()

	second := service.CheckAllAchievements(context.Background(), 1, nil)
	if len(second) != 0 {
		t.Errorf("second pass over the same data must unlock nothing, got %d", len(second))
	}
	if len(store.insertedUnlocks) != 1 {
		t.Errorf("expected exactly 1 stored unlock, got %d", len(store.insertedUnlocks))
	}
}

func TestCheckAllAchievements_PartialInsertFailureIsolated(t *testing.T) {
	store := &fakeAchievementStore{
		catalog: []models.Achievement{
			catalogEntry(1, "sessions_5", models.CriteriaSessionCount, 5),
			catalogEntry(2, "sessions_10", models.CriteriaSessionCount, 10),
		},
		sessions:      sessionsOf(10, 20),
		failUnlockFor: map[uint]bool{1: true},
	}
	service := NewAchievementService(store)

	unlocked := service.CheckAllAchievements(context.Background(), 1, nil)

	if len(unlocked) != 1 {
		t.Fatalf("one failed insert must not block the other, got %d unlocks", len(unlocked))
	}
	if unlocked[0].AchievementID != 2 {
		t.Errorf("expected achievement 2 to survive, got %d", unlocked[0].AchievementID)
	}
}

func TestCheckAllAchievements_FetchFailureReturnsEmpty(t *testing.T) {
	boom := errors.New("db down")

	inject := []func(*fakeAchievementStore){
		func(f *fakeAchievementStore) { f.catalogErr = boom },
		func(f *fakeAchievementStore) { f.unlockedErr = boom },
		func(f *fakeAchievementStore) { f.progressErr = boom },
		func(f *fakeAchievementStore) { f.sessionsErr = boom },
		func(f *fakeAchievementStore) { f.booksErr = boom },
	}

	for i, breakOne := range inject {
		t.Run(fmt.Sprintf("fetch_%d_fails", i), func(t *testing.T) {
			store := &fakeAchievementStore{
				catalog:  []models.Achievement{catalogEntry(1, "sessions_1", models.CriteriaSessionCount, 1)},
				sessions: sessionsOf(5, 20),
			}
			breakOne(store)

			unlocked := NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil)
			if len(unlocked) != 0 {
				t.Errorf("a failed fetch must abort the pass, got %d unlocks", len(unlocked))
			}
			if len(store.insertedUnlocks) != 0 {
				t.Errorf("a failed fetch must write nothing, got %d inserts", len(store.insertedUnlocks))
			}
		})
	}
}

func TestCheckAllAchievements_EmptyCatalog(t *testing.T) {
	store := &fakeAchievementStore{sessions: sessionsOf(50, 30)}

	service := NewAchievementService(store)

	unlocked := service.CheckAllAchievements(context.Background(), 1, nil)
	if len(unlocked) != 0 {
		t.Errorf("expected no unlocks with an empty catalog, got %d", len(unlocked))
	}

	records, err := service.GetUnlockedAchievements(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no unlock records, got %d", len(records))
	}
}

func TestCheckAllAchievements_MalformedCriteriaIsolated(t *testing.T) {
	store := &fakeAchievementStore{
		catalog: []models.Achievement{
			catalogEntry(1, "broken", "no_such_kind", 1),
			catalogEntry(2, "sessions_5", models.CriteriaSessionCount, 5),
		},
		sessions: sessionsOf(5, 20),
	}

	unlocked := NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil)
	if len(unlocked) != 1 || unlocked[0].AchievementID != 2 {
		t.Errorf("a malformed catalog row must not block the rest, got %+v", unlocked)
	}
}

func TestCheckAllAchievements_InactiveSkipped(t *testing.T) {
	inactive := catalogEntry(1, "sessions_1", models.CriteriaSessionCount, 1)
	inactive.IsActive = false

	store := &fakeAchievementStore{
		catalog:  []models.Achievement{inactive},
		sessions: sessionsOf(5, 20),
	}

	if got := NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil); len(got) != 0 {
		t.Errorf("inactive achievements must not unlock, got %d", len(got))
	}
}

func TestCheckAllAchievements_ProgressDeadBand(t *testing.T) {
	catalog := []models.Achievement{catalogEntry(1, "sessions_50", models.CriteriaSessionCount, 50)}

	// No stored value: first pass writes.
	store := &fakeAchievementStore{catalog: catalog, sessions: sessionsOf(7, 20)}
	NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil)
	if len(store.writtenProgress) != 1 {
		t.Fatalf("expected 1 progress write, got %d", len(store.writtenProgress))
	}
	written := store.writtenProgress[0]
	if written.AchievementKey != "sessions_50" || written.CurrentProgress != 7 || written.TargetProgress != 50 {
		t.Errorf("unexpected progress write %+v", written)
	}

	// Stored value equals the computed one: suppressed.
	store = &fakeAchievementStore{
		catalog:  catalog,
		sessions: sessionsOf(7, 20),
		progress: []models.AchievementProgress{{UserID: 1, AchievementKey: "sessions_50", CurrentProgress: 7}},
	}
	NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil)
	if len(store.writtenProgress) != 0 {
		t.Errorf("an unchanged value must not be rewritten, got %d writes", len(store.writtenProgress))
	}

	// Stored value one behind: written.
	store = &fakeAchievementStore{
		catalog:  catalog,
		sessions: sessionsOf(7, 20),
		progress: []models.AchievementProgress{{UserID: 1, AchievementKey: "sessions_50", CurrentProgress: 6}},
	}
	NewAchievementService(store).CheckAllAchievements(context.Background(), 1, nil)
	if len(store.writtenProgress) != 1 {
		t.Errorf("a change of 1 must be written, got %d writes", len(store.writtenProgress))
	}
}

func TestCheckAllAchievements_TriggerDrivesSingleSessionMinutes(t *testing.T) {
	trigger := completedSession(65)

	store := &fakeAchievementStore{
		catalog:  []models.Achievement{catalogEntry(1, "marathon_60", models.CriteriaSingleSessionMinutes, 60)},
		sessions: append(sessionsOf(3, 10), trigger),
	}

	unlocked := NewAchievementService(store).CheckAllAchievements(context.Background(), 1, &trigger)
	if len(unlocked) != 1 {
		t.Fatalf("expected the trigger session to unlock marathon_60, got %d", len(unlocked))
	}
}

func TestCalculateUserStats(t *testing.T) {
	incomplete := models.ReadingSession{StartedAt: time.Now().UTC(), Completed: false}

	store := &fakeAchievementStore{
		sessions: append(sessionsOf(4, 30), incomplete),
		books: []models.Book{
			{ReadingStatus: models.StatusFinished},
			{ReadingStatus: models.StatusCurrentlyReading},
		},
	}

	stats, err := NewAchievementService(store).CalculateUserStats(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalSessions != 4 {
		t.Errorf("incomplete sessions must not count, got %d", stats.TotalSessions)
	}
	if stats.TotalMinutes != 120 {
		t.Errorf("expected 120 total minutes, got %d", stats.TotalMinutes)
	}
	if stats.BooksFinished != 1 {
		t.Errorf("expected 1 finished book, got %d", stats.BooksFinished)
	}
	if stats.AverageSessionMinutes != 30 {
		t.Errorf("expected average 30, got %v", stats.AverageSessionMinutes)
	}
}

func TestCalculateUserStats_FetchError(t *testing.T) {
	store := &fakeAchievementStore{booksErr: errors.New("db down")}

	if _, err := NewAchievementService(store).CalculateUserStats(context.Background(), 1); err == nil {
		t.Error("expected an error when a fetch fails")
	}
}
