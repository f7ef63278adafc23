package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sightread/internal/store"
)

var dbCounter int

func openStore(t *testing.T) *store.Store {
	t.Helper()
	dbCounter++
	st, err := store.Open(fmt.Sprintf("file:profile_test_%d?mode=memory&cache=shared", dbCounter))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newParent(t *testing.T, st *store.Store, email string) int64 {
	t.Helper()
	p, err := st.ParentRepo().Create(context.Background(), email, "hash")
	require.NoError(t, err)
	return p.ID
}

func TestCreate_Validation(t *testing.T) {
	st := openStore(t)
	svc := NewService(st.ProfileRepo(), 2, zerolog.Nop())
	ctx := context.Background()
	parent := newParent(t, st, "a@example.com")

	_, err := svc.Create(ctx, parent, "   ")
	assert.ErrorIs(t, err, ErrBlankName)

	_, err = svc.Create(ctx, parent, strings.Repeat("é", MaxNameLength+1))
	assert.ErrorIs(t, err, ErrNameTooLong)

	p, err := svc.Create(ctx, parent, strings.Repeat("é", MaxNameLength))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Score)

	p, err = svc.Create(ctx, parent, "  Ava  ")
	require.NoError(t, err)
	assert.Equal(t, "Ava", p.Name)

	_, err = svc.Create(ctx, parent, "Ben")
	assert.ErrorIs(t, err, ErrProfileLimit)

	// The cap is per parent.
	other := newParent(t, st, "b@example.com")
	_, err = svc.Create(ctx, other, "Ben")
	assert.NoError(t, err)
}

func TestDefaultLimit(t *testing.T) {
	svc := NewService(nil, 0, zerolog.Nop())
	assert.Equal(t, DefaultMaxPerParent, svc.MaxPerParent())
}

func TestListGetDelete(t *testing.T) {
	st := openStore(t)
	svc := NewService(st.ProfileRepo(), 0, zerolog.Nop())
	ctx := context.Background()
	parent := newParent(t, st, "a@example.com")

	ava, err := svc.Create(ctx, parent, "Ava")
	require.NoError(t, err)
	_, err = svc.Create(ctx, parent, "Ben")
	require.NoError(t, err)

	list, err := svc.List(ctx, parent)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ava", list[0].Name)

	got, err := svc.Get(ctx, ava.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ava", got.Name)

	require.NoError(t, svc.Delete(ctx, parent, ava.ID))
	assert.ErrorIs(t, svc.Delete(ctx, parent, ava.ID), ErrNotFound)

	_, err = svc.Get(ctx, ava.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLeaderboard(t *testing.T) {
	st := openStore(t)
	svc := NewService(st.ProfileRepo(), 0, zerolog.Nop())
	ctx := context.Background()
	parent := newParent(t, st, "a@example.com")
	other := newParent(t, st, "b@example.com")

	scores := []struct {
		parent int64
		name   string
		score  int
	}{
		{parent, "Ava", 40},
		{parent, "Ben", 20},
		{other, "Cal", 40},
		{other, "Dee", 10},
	}
	for _, s := range scores {
		p, err := svc.Create(ctx, s.parent, s.name)
		require.NoError(t, err)
		_, err = st.ProfileRepo().AddScore(ctx, p.ID, s.score)
		require.NoError(t, err)
	}

	entries, err := svc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = fmt.Sprintf("%d:%s:%d", e.Rank, e.Name, e.Score)
	}
	assert.Equal(t, []string{"1:Ava:40", "1:Cal:40", "3:Ben:20", "4:Dee:10"}, got)

	top, err := svc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestRank(t *testing.T) {
	entries := Rank([]Profile{
		{ID: 1, Name: "a", Score: 50},
		{ID: 2, Name: "b", Score: 30},
		{ID: 3, Name: "c", Score: 30},
		{ID: 4, Name: "d", Score: 30},
		{ID: 5, Name: "e", Score: 0},
	})
	ranks := make([]int, len(entries))
	for i, e := range entries {
		ranks[i] = e.Rank
	}
	assert.Equal(t, []int{1, 2, 2, 2, 5}, ranks)
	assert.Empty(t, Rank(nil))
}
