// Package gems hands out the rewards shown after a quiz.
package gems

// GemAward represents a single gem earned in a quiz.
type GemAward struct {
	Type      GemType
	Rarity    Rarity
	SessionID string
	Reason    string // human-readable reason, e.g. "6 correct in a row!"
}
