// services/cleanup.go - Background Session Cleanup
package services

import (
	"log"
	"time"

	"readrise/database"
	"readrise/models"
)

// CleanupService handles background cleanup tasks
type CleanupService struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var cleanupService *CleanupService

// abandonedSessionCutoff is how long a started-but-never-completed session
// may sit before cleanup deletes it. Completed sessions are never touched.
const abandonedSessionCutoff = 24 * time.Hour

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{
		interval: time.Hour,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	cleanupService.Start()
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the background cleanup loop.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.CleanupAbandonedSessions(); err != nil {
					log.Printf("Cleanup error: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop stops the cleanup loop and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

// CleanupAbandonedSessions removes incomplete reading sessions older than the
// cutoff. These are timers that were started and never finished; they carry
// no duration and never count toward achievements, so deleting them is safe.
func (s *CleanupService) CleanupAbandonedSessions() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	cutoff := time.Now().UTC().Add(-abandonedSessionCutoff)

	result := db.Where("completed = ? AND started_at < ?", false, cutoff).
		Delete(&models.ReadingSession{})
	if result.Error != nil {
		log.Printf("Error deleting abandoned sessions: %v", result.Error)
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("✅ Cleaned up %d abandoned reading sessions", result.RowsAffected)
	}
	return nil
}
