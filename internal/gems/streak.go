package gems

import "github.com/abhisek/sightread/internal/session"

// BaseStreakThreshold is the shortest run of correct answers that earns
// a streak gem.
const BaseStreakThreshold = 3

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	thresholds := []int{3, 5, 8, 10}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 10, every 5.
	return ((current / 5) + 1) * 5
}

// LongestStreak returns the longest run of consecutive correct answers.
// Skipped questions break a run.
func LongestStreak(results []session.NoteResult) int {
	var best, run int
	for _, r := range results {
		if r.Attempted && r.Correct {
			run++
			best = max(best, run)
			continue
		}
		run = 0
	}
	return best
}
