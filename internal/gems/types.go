package gems

// GemType identifies the category of achievement.
type GemType string

const (
	GemSession GemType = "session"
	GemStreak  GemType = "streak"
	GemPerfect GemType = "perfect"
)

// AllGemTypes returns all gem types in display order.
func AllGemTypes() []GemType {
	return []GemType{GemPerfect, GemStreak, GemSession}
}

// DisplayName returns a human-readable label for the gem type.
func (t GemType) DisplayName() string {
	switch t {
	case GemSession:
		return "Quiz"
	case GemStreak:
		return "Streak"
	case GemPerfect:
		return "Perfect"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the gem type.
func (t GemType) Icon() string {
	switch t {
	case GemSession:
		return "🏆"
	case GemStreak:
		return "⚡"
	case GemPerfect:
		return "💎"
	default:
		return "✦"
	}
}
