package history

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/screentest"
	"github.com/abhisek/sightread/internal/store"
)

func seeded(t *testing.T) (*HistoryScreen, *screentest.Env) {
	t.Helper()
	env := screentest.New(t)
	parent := env.Parent(t, "p@example.com")
	kid := env.Profile(t, parent, "Mia", 0)

	ctx := context.Background()
	events := env.Deps.Events
	for i, mode := range []string{"multiple_choice", "builder"} {
		require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
			ProfileID: kid.ID, SessionID: "s" + string(rune('1'+i)), Action: "end", Mode: mode,
			QuestionsTotal: 10, QuestionsAnswered: 10, CorrectAnswers: 8 - i, Score: 80 - 10*i,
			DurationSecs: 65,
		}))
	}
	answers := []struct {
		note    string
		correct bool
	}{
		{"A", true}, {"A", true}, {"F♯", false}, {"F♯", true},
	}
	for i, a := range answers {
		require.NoError(t, events.AppendAnswerEvent(ctx, store.AnswerEventData{
			ProfileID: kid.ID, SessionID: "s1", QuestionID: i + 1, Note: a.note,
			Given: a.note, Correct: a.correct, AnswerFormat: "multiple_choice",
		}))
	}

	s := New(env.Deps, &deps.Player{Parent: parent, Profile: kid})
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s, env
}

func TestHistoryLoadsNewestFirst(t *testing.T) {
	s, _ := seeded(t)

	require.Len(t, s.sessions, 2)
	assert.Equal(t, "builder", s.sessions[0].Mode)
	assert.Equal(t, "multiple_choice", s.sessions[1].Mode)

	require.Len(t, s.notes, 2)
	assert.Equal(t, "F♯", s.notes[0].Note, "weakest note first")

	view := s.View(100, 30)
	assert.Contains(t, view, "Quizzes (2)")
	assert.Contains(t, view, "builder")
	assert.Contains(t, view, "1:05")
	assert.Contains(t, view, "7/10")
}

func TestHistoryNotesTab(t *testing.T) {
	s, _ := seeded(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, tabNotes, s.tab)

	view := s.View(100, 30)
	assert.Contains(t, view, "F♯")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "2/2")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected, "selection stops at the last row")
}

func TestHistoryEmpty(t *testing.T) {
	env := screentest.New(t)
	parent := env.Parent(t, "p@example.com")
	kid := env.Profile(t, parent, "Leo", 0)

	s := New(env.Deps, &deps.Player{Parent: parent, Profile: kid})
	assert.Contains(t, s.View(80, 30), "Loading")
	s.Update(s.Init()())
	assert.Contains(t, s.View(80, 30), "No quizzes yet")
}

func TestHistoryEscPops(t *testing.T) {
	s, _ := seeded(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
