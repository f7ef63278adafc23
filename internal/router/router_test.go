package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sightread/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestResetScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	root := &stubScreen{title: "root"}
	r.Update(ResetScreenMsg{Screen: root})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Active().Title() != "root" {
		t.Errorf("expected active 'root', got %q", r.Active().Title())
	}
	if !root.initRan {
		t.Error("expected Init() to run via ResetScreenMsg")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	if cmd := r.Update(tea.KeyPressMsg{Code: 'x'}); cmd != nil {
		t.Error("expected nil command from stub screen")
	}
	if r.View(10, 10) != "first" {
		t.Errorf("View = %q, want %q", r.View(10, 10), "first")
	}
}

type resumingScreen struct {
	stubScreen
	resumed int
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

func TestPopResumesUncoveredScreen(t *testing.T) {
	base := &resumingScreen{stubScreen: stubScreen{title: "base"}}
	r := New(base)
	r.Push(&stubScreen{title: "top"})

	r.Update(PopScreenMsg{})

	if base.resumed != 1 {
		t.Errorf("expected Resume once, got %d", base.resumed)
	}
}

type closingScreen struct {
	stubScreen
	order *[]string
}

func (s *closingScreen) Close() { *s.order = append(*s.order, s.title) }

func TestCloseAllTopFirst(t *testing.T) {
	var order []string
	r := New(&closingScreen{stubScreen: stubScreen{title: "home"}, order: &order})
	r.Push(&stubScreen{title: "plain"})
	r.Push(&closingScreen{stubScreen: stubScreen{title: "quiz"}, order: &order})

	r.CloseAll()

	if len(order) != 2 || order[0] != "quiz" || order[1] != "home" {
		t.Errorf("expected [quiz home], got %v", order)
	}
}
