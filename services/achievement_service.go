// services/achievement_service.go - Achievement Evaluation Engine
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"readrise/models"

	"golang.org/x/sync/errgroup"
)

const (
	// recentSessionWindow bounds how far back the engine looks when
	// recomputing metrics. 270 sessions covers months of daily reading.
	recentSessionWindow = 270

	// fetchTimeout caps the initial fetch fan-out. On timeout the whole
	// pass fails safe and returns nothing.
	fetchTimeout = 10 * time.Second
)

// AchievementService evaluates a user's reading history against the
// achievement catalog. It holds no per-user state; everything is recomputed
// from the store on each pass, so two passes over the same data agree.
type AchievementService struct {
	store AchievementStore
}

func NewAchievementService(store AchievementStore) *AchievementService {
	return &AchievementService{store: store}
}

// fetchResult is the consistent snapshot one engine pass works from.
type fetchResult struct {
	catalog  []models.Achievement
	unlocked []models.UserAchievement
	progress []models.AchievementProgress
	sessions []models.ReadingSession
	books    []models.Book
}

type unlockCandidate struct {
	achievement models.Achievement
}

type progressCandidate struct {
	key     string
	current float64
	target  float64
}

// CheckAllAchievements runs one full evaluation pass for a user and returns
// the achievements unlocked during this call only. trigger is the session
// that prompted the pass (may be nil, e.g. for an explicit re-check).
//
// Errors never escape: a fetch failure aborts the pass with an empty result,
// and per-achievement evaluation or write failures are logged and isolated so
// the session-completion flow that calls this is never broken by it.
func (s *AchievementService) CheckAllAchievements(ctx context.Context, userID uint, trigger *models.ReadingSession) []models.UserAchievement {
	fetched, err := s.fetchAll(ctx, userID)
	if err != nil {
		log.Printf("achievements: fetch failed for user %d: %v", userID, err)
		return nil
	}

	unlockQueue, progressQueue := s.evaluate(userID, fetched, trigger)

	unlocked := s.runUnlocks(ctx, userID, unlockQueue)
	s.runProgressWrites(ctx, userID, progressQueue)

	return unlocked
}

// fetchAll loads the five datasets concurrently. Any single failure is fatal
// to the pass — evaluating against a partial snapshot could unlock on
// inconsistent data.
func (s *AchievementService) fetchAll(ctx context.Context, userID uint) (*fetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var result fetchResult
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		result.catalog, err = s.store.GetAchievementCatalog(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		result.unlocked, err = s.store.GetUnlockedAchievements(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		result.progress, err = s.store.GetAchievementProgress(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		result.sessions, err = s.store.GetRecentSessions(ctx, userID, recentSessionWindow)
		return err
	})
	g.Go(func() error {
		var err error
		result.books, err = s.store.GetBooks(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// evaluate runs every active, not-yet-unlocked achievement through its
// criteria evaluator and queues unlock and progress operations. The streak is
// computed once and shared by every consecutive_days achievement.
func (s *AchievementService) evaluate(userID uint, fetched *fetchResult, trigger *models.ReadingSession) ([]unlockCandidate, []progressCandidate) {
	// Map unlock records back to catalog keys. Records whose achievement id
	// no longer resolves are ignored; re-evaluating those is safe because
	// the storage layer rejects duplicate unlocks anyway.
	keyByID := make(map[uint]string, len(fetched.catalog))
	for _, achievement := range fetched.catalog {
		keyByID[achievement.ID] = achievement.Key
	}
	unlockedKeys := make(map[string]bool, len(fetched.unlocked))
	for _, record := range fetched.unlocked {
		if key, ok := keyByID[record.AchievementID]; ok {
			unlockedKeys[key] = true
		}
	}

	storedProgress := make(map[string]float64, len(fetched.progress))
	for _, row := range fetched.progress {
		storedProgress[row.AchievementKey] = row.CurrentProgress
	}

	completed := make([]models.ReadingSession, 0, len(fetched.sessions))
	for _, session := range fetched.sessions {
		if session.Completed {
			completed = append(completed, session)
		}
	}

	data := evalData{
		sessions: completed,
		books:    fetched.books,
		trigger:  trigger,
		streak:   CalculateStreaks(completed),
	}

	var unlockQueue []unlockCandidate
	var progressQueue []progressCandidate

	for _, achievement := range fetched.catalog {
		if !achievement.IsActive || unlockedKeys[achievement.Key] {
			continue
		}

		current, skip, err := evaluateCriteria(achievement, data)
		if err != nil {
			// Malformed catalog row: treated as not met, everything else
			// still gets evaluated.
			log.Printf("achievements: evaluate %q for user %d: %v", achievement.Key, userID, err)
			continue
		}
		if skip {
			continue
		}

		if current >= float64(achievement.CriteriaTarget) {
			unlockQueue = append(unlockQueue, unlockCandidate{achievement: achievement})
		}

		var stored *float64
		if value, ok := storedProgress[achievement.Key]; ok {
			stored = &value
		}
		if ShouldWriteProgress(stored, current) {
			progressQueue = append(progressQueue, progressCandidate{
				key:     achievement.Key,
				current: current,
				target:  float64(achievement.CriteriaTarget),
			})
		}
	}

	return unlockQueue, progressQueue
}

// runUnlocks executes queued unlocks concurrently. Every operation settles on
// its own; one failed insert never blocks or rolls back the others.
func (s *AchievementService) runUnlocks(ctx context.Context, userID uint, queue []unlockCandidate) []models.UserAchievement {
	if len(queue) == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		unlocked []models.UserAchievement
	)

	for _, candidate := range queue {
		wg.Add(1)
		go func(achievement models.Achievement) {
			defer wg.Done()

			record, err := s.store.InsertUnlock(ctx, userID, achievement.ID)
			if err != nil {
				log.Printf("achievements: unlock %q for user %d: %v", achievement.Key, userID, err)
				return
			}
			record.Achievement = achievement

			mu.Lock()
			unlocked = append(unlocked, *record)
			mu.Unlock()
		}(candidate.achievement)
	}

	wg.Wait()
	return unlocked
}

// runProgressWrites executes queued progress writes concurrently. Progress is
// best-effort display state; failures are logged and swallowed.
func (s *AchievementService) runProgressWrites(ctx context.Context, userID uint, queue []progressCandidate) {
	if len(queue) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, candidate := range queue {
		wg.Add(1)
		go func(c progressCandidate) {
			defer wg.Done()

			if _, err := s.store.WriteProgress(ctx, userID, c.key, c.current, c.target); err != nil {
				log.Printf("achievements: progress %q for user %d: %v", c.key, userID, err)
			}
		}(candidate)
	}
	wg.Wait()
}

// GetUnlockedAchievements returns the user's unlock records, newest first.
func (s *AchievementService) GetUnlockedAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	return s.store.GetUnlockedAchievements(ctx, userID)
}

// UserStats is the display-facing aggregate over a user's reading history.
// It shares the engine's metric definitions but plays no part in unlocks.
type UserStats struct {
	TotalSessions         int     `json:"total_sessions"`
	TotalMinutes          int     `json:"total_minutes"`
	BooksFinished         int     `json:"books_finished"`
	CurrentStreak         int     `json:"current_streak"`
	LongestStreak         int     `json:"longest_streak"`
	AverageSessionMinutes float64 `json:"average_session_minutes"`
}

// CalculateUserStats summarizes a user's completed sessions and books.
func (s *AchievementService) CalculateUserStats(ctx context.Context, userID uint) (*UserStats, error) {
	var (
		sessions []models.ReadingSession
		books    []models.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.store.GetRecentSessions(gctx, userID, recentSessionWindow)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.store.GetBooks(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &UserStats{}

	totalSeconds := 0
	completed := make([]models.ReadingSession, 0, len(sessions))
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		completed = append(completed, session)
		if session.ActualDuration != nil {
			totalSeconds += *session.ActualDuration
		}
	}

	stats.TotalSessions = len(completed)
	stats.TotalMinutes = totalSeconds / 60
	if stats.TotalSessions > 0 {
		stats.AverageSessionMinutes = float64(totalSeconds) / 60 / float64(stats.TotalSessions)
	}

	for _, book := range books {
		if book.ReadingStatus == models.StatusFinished {
			stats.BooksFinished++
		}
	}

	streak := CalculateStreaks(completed)
	stats.CurrentStreak = streak.Current
	stats.LongestStreak = streak.Longest

	return stats, nil
}
