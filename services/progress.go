// services/progress.go - Progress Write Dead-Band
package services

import "math"

// ShouldWriteProgress decides whether a freshly computed progress value has
// drifted enough from the stored one to be worth a write. Progress values are
// displayed rounded, so sub-unit deltas would only generate write traffic.
// stored is nil when no progress row exists yet.
func ShouldWriteProgress(stored *float64, next float64) bool {
	if stored == nil {
		return true
	}
	return math.Abs(*stored-next) >= 1
}
