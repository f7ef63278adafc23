package profile

import "context"

// Entry is one row of the leaderboard.
type Entry struct {
	Rank      int    `json:"rank" yaml:"rank"`
	ProfileID int64  `json:"profile_id" yaml:"profile_id"`
	Name      string `json:"name" yaml:"name"`
	Score     int    `json:"score" yaml:"score"`
}

// Leaderboard returns every profile by score. Equal scores share a rank
// and the next rank skips ahead (1, 2, 2, 4). limit <= 0 means all.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	profiles, err := s.repo.Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Rank(profiles), nil
}

// Rank assigns competition ranks to profiles already sorted by score
// descending.
func Rank(profiles []Profile) []Entry {
	entries := make([]Entry, len(profiles))
	for i, p := range profiles {
		rank := i + 1
		if i > 0 && p.Score == profiles[i-1].Score {
			rank = entries[i-1].Rank
		}
		entries[i] = Entry{
			Rank:      rank,
			ProfileID: p.ID,
			Name:      p.Name,
			Score:     p.Score,
		}
	}
	return entries
}
