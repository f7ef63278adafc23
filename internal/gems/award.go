package gems

import (
	"fmt"

	"github.com/abhisek/sightread/internal/session"
)

// Award returns the gems a quiz earned, best first. A quiz that was quit
// early can still earn a streak gem but no quiz or perfect gem.
func Award(sum *session.Summary) []GemAward {
	if sum == nil {
		return nil
	}
	var awards []GemAward

	perfect := sum.Completed && sum.TotalQuestions > 0 && sum.TotalCorrect == sum.TotalQuestions
	if perfect {
		awards = append(awards, GemAward{
			Type:      GemPerfect,
			Rarity:    RarityLegendary,
			SessionID: sum.SessionID,
			Reason:    fmt.Sprintf("All %d notes right!", sum.TotalQuestions),
		})
	}

	if streak := LongestStreak(sum.Results); streak >= BaseStreakThreshold {
		awards = append(awards, GemAward{
			Type:      GemStreak,
			Rarity:    StreakRarity(streak),
			SessionID: sum.SessionID,
			Reason:    fmt.Sprintf("%d correct in a row!", streak),
		})
	}

	if sum.Completed && sum.Answered > 0 {
		awards = append(awards, GemAward{
			Type:      GemSession,
			Rarity:    SessionRarity(sum.Accuracy),
			SessionID: sum.SessionID,
			Reason:    fmt.Sprintf("Quiz complete (%.0f%% accuracy)", sum.Accuracy*100),
		})
	}
	return awards
}
