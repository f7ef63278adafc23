package gems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sightread/internal/session"
)

func results(pattern string) []session.NoteResult {
	out := make([]session.NoteResult, len(pattern))
	for i, c := range pattern {
		switch c {
		case 'y':
			out[i] = session.NoteResult{Attempted: true, Correct: true}
		case 'n':
			out[i] = session.NoteResult{Attempted: true}
		}
	}
	return out
}

func TestAwardPerfectQuiz(t *testing.T) {
	sum := &session.Summary{
		SessionID: "s1", TotalQuestions: 5, Answered: 5, TotalCorrect: 5,
		Accuracy: 1, Completed: true, Results: results("yyyyy"),
	}

	got := Award(sum)
	require.Len(t, got, 3)
	assert.Equal(t, GemPerfect, got[0].Type)
	assert.Equal(t, GemStreak, got[1].Type)
	assert.Equal(t, RarityRare, got[1].Rarity)
	assert.Equal(t, "5 correct in a row!", got[1].Reason)
	assert.Equal(t, GemSession, got[2].Type)
	assert.Equal(t, RarityLegendary, got[2].Rarity)
	for _, g := range got {
		assert.Equal(t, "s1", g.SessionID)
	}
}

func TestAwardShortStreakOnlySessionGem(t *testing.T) {
	sum := &session.Summary{
		TotalQuestions: 4, Answered: 4, TotalCorrect: 2,
		Accuracy: 0.5, Completed: true, Results: results("ynyn"),
	}

	got := Award(sum)
	require.Len(t, got, 1)
	assert.Equal(t, GemSession, got[0].Type)
	assert.Equal(t, RarityRare, got[0].Rarity)
}

func TestAwardQuitEarly(t *testing.T) {
	sum := &session.Summary{
		TotalQuestions: 10, Answered: 3, TotalCorrect: 3,
		Accuracy: 1, Completed: false, Results: results("yyy-------"),
	}

	got := Award(sum)
	require.Len(t, got, 1)
	assert.Equal(t, GemStreak, got[0].Type)
}

func TestAwardNothing(t *testing.T) {
	assert.Nil(t, Award(nil))
	assert.Empty(t, Award(&session.Summary{Completed: true, TotalQuestions: 3, Results: results("---")}))
}
