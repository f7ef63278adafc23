package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/session"
	"github.com/abhisek/sightread/internal/store"
)

// flakyRepo fails AddScore for the configured call numbers.
type flakyRepo struct {
	store.ProfileRepo

	mu     sync.Mutex
	calls  int
	failOn map[int]bool
	total  int
	seen   []int
}

func (r *flakyRepo) AddScore(_ context.Context, _ int64, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failOn[r.calls] {
		return 0, errors.New("db down")
	}
	r.total += delta
	r.seen = append(r.seen, delta)
	return r.total, nil
}

func TestScoreKeeper_OrderedAndDrained(t *testing.T) {
	repo := &flakyRepo{}
	k := NewScoreKeeper(repo, 1, 0, zerolog.Nop())

	for i := 1; i <= 20; i++ {
		k.ApplyScoreDelta(i)
	}
	k.Close()

	want := make([]int, 20)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, repo.seen)
	assert.Equal(t, 210, k.Total())
}

func TestScoreKeeper_ErrorsAreSwallowed(t *testing.T) {
	repo := &flakyRepo{failOn: map[int]bool{2: true}}
	var updates []int
	k := NewScoreKeeper(repo, 1, 100, zerolog.Nop(), OnUpdate(func(total int) {
		updates = append(updates, total)
	}))

	assert.Equal(t, 100, k.Total())
	k.ApplyScoreDelta(10)
	k.ApplyScoreDelta(10)
	k.ApplyScoreDelta(10)
	k.Close()

	assert.Equal(t, []int{10, 20}, updates)
	assert.Equal(t, 20, k.Total())
}

func TestScoreKeeper_AfterClose(t *testing.T) {
	repo := &flakyRepo{}
	k := NewScoreKeeper(repo, 1, 0, zerolog.Nop())
	k.Close()
	k.Close()

	k.ApplyScoreDelta(10)
	assert.Empty(t, repo.seen)
}

func TestScoreKeeper_AsSessionSink(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	parent := newParent(t, st, "a@example.com")
	p, err := st.ProfileRepo().Create(ctx, parent, "Ava")
	require.NoError(t, err)

	k := NewScoreKeeper(st.ProfileRepo(), p.ID, p.Score, zerolog.Nop())
	s := session.New(k)
	require.True(t, s.Start(5, notes.DefaultBank(), problemgen.NewSource(42)))

	correct := 0
	for i := 0; !s.IsCompleted(); i++ {
		q := s.CurrentQuestion()
		answer := q.Answer
		if i%2 == 1 {
			answer = "wrong"
		}
		if r, _ := s.Answer(answer); r.Correct {
			correct++
		}
		s.Advance()
	}
	k.Close()

	got, err := st.ProfileRepo().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, correct*session.DefaultPointsPerCorrect, got.Score)
	assert.Equal(t, 3, correct)
}

// gatedRepo holds every AddScore until release is closed.
type gatedRepo struct {
	flakyRepo
	release chan struct{}
}

func (r *gatedRepo) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	<-r.release
	return r.flakyRepo.AddScore(ctx, id, delta)
}

func TestScoreKeeper_SlowBackendDoesNotBlock(t *testing.T) {
	repo := &gatedRepo{release: make(chan struct{})}
	k := NewScoreKeeper(repo, 1, 0, zerolog.Nop())

	queued := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			k.ApplyScoreDelta(1)
		}
		close(queued)
	}()

	select {
	case <-queued:
	case <-time.After(2 * time.Second):
		t.Fatal("ApplyScoreDelta blocked on a stalled backend")
	}

	close(repo.release)
	k.Close()
	assert.Equal(t, 500, k.Total())
	assert.Len(t, repo.seen, 500)
}
