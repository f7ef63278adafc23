package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"entgo.io/ent"

	entschema "github.com/abhisek/sightread/ent/schema"
)

var testDBCounter int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	testDBCounter++
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", testDBCounter)
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sightread.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// Reopening runs migration again without error.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("SIGHTREAD_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIGHTREAD_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "sightread", "sightread.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

// The migration tables must carry every field the ent schema declares.
func TestTablesMatchSchema(t *testing.T) {
	tests := []struct {
		table  string
		fields []ent.Field
	}{
		{ParentsTable.Name, entschema.Parent{}.Fields()},
		{ProfilesTable.Name, entschema.Profile{}.Fields()},
		{SessionEventsTable.Name, append(entschema.EventMixin{}.Fields(), entschema.SessionEvent{}.Fields()...)},
		{AnswerEventsTable.Name, append(entschema.EventMixin{}.Fields(), entschema.AnswerEvent{}.Fields()...)},
		{ParentSessionsTable.Name, entschema.ParentSession{}.Fields()},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			var cols map[string]bool
			for _, tbl := range Tables {
				if tbl.Name != tt.table {
					continue
				}
				cols = make(map[string]bool)
				for _, c := range tbl.Columns {
					cols[c.Name] = true
				}
			}
			if cols == nil {
				t.Fatalf("table %s not registered", tt.table)
			}
			for _, f := range tt.fields {
				name := f.Descriptor().Name
				if !cols[name] {
					t.Errorf("column %s.%s missing from migration", tt.table, name)
				}
			}
			if len(cols) != len(tt.fields)+1 {
				t.Errorf("table %s has %d columns, schema declares %d fields plus id", tt.table, len(cols), len(tt.fields))
			}
		})
	}
}

func TestParentRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ParentRepo()
	ctx := context.Background()

	p, err := repo.Create(ctx, "mum@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero id")
	}

	_, err = repo.Create(ctx, "mum@example.com", "other")
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate create err = %v, want ErrDuplicate", err)
	}

	got, err := repo.ByEmail(ctx, "mum@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.ID != p.ID || got.PasswordHash != "hash" {
		t.Errorf("ByEmail = %+v, want id %d", got, p.ID)
	}

	if _, err := repo.ByEmail(ctx, "dad@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email err = %v, want ErrNotFound", err)
	}
	if _, err := repo.Get(ctx, p.ID); err != nil {
		t.Errorf("get: %v", err)
	}
}

func TestSessionRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	if _, err := repo.Current(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty Current err = %v, want ErrNotFound", err)
	}

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	if err := repo.Save(ctx, ParentSession{Token: "t1", ParentID: 1, ExpiresAt: expires}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, ParentSession{Token: "t2", ParentID: 2, ExpiresAt: expires}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got.Token != "t2" || got.ParentID != 2 || !got.ExpiresAt.Equal(expires) {
		t.Errorf("Current = %+v, want the second sign-in only", got)
	}

	later := expires.Add(24 * time.Hour)
	if err := repo.Touch(ctx, "t2", later); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if got, _ := repo.Current(ctx); !got.ExpiresAt.Equal(later) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, later)
	}
	if err := repo.Touch(ctx, "t1", later); !errors.Is(err, ErrNotFound) {
		t.Errorf("touch replaced token err = %v, want ErrNotFound", err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Current(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current after clear err = %v, want ErrNotFound", err)
	}
}

func createParent(t *testing.T, s *Store, email string) *Parent {
	t.Helper()
	p, err := s.ParentRepo().Create(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	return p
}

func TestProfileRepo_CRUD(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()
	parent := createParent(t, s, "a@example.com")
	other := createParent(t, s, "b@example.com")

	ava, err := repo.Create(ctx, parent.ID, "Ava")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, parent.ID, "Ben"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, other.ID, "Cal"); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListByParent(ctx, parent.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Ava" || list[1].Name != "Ben" {
		t.Errorf("ListByParent = %+v, want [Ava Ben]", list)
	}

	n, err := repo.CountByParent(ctx, parent.ID)
	if err != nil || n != 2 {
		t.Errorf("CountByParent = %d, %v; want 2", n, err)
	}

	// Another parent cannot delete Ava.
	if err := repo.Delete(ctx, other.ID, ava.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, parent.ID, ava.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, ava.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted err = %v, want ErrNotFound", err)
	}
}

func TestProfileRepo_AddScore(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()
	parent := createParent(t, s, "a@example.com")
	p, err := repo.Create(ctx, parent.ID, "Ava")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddScore(ctx, p.ID, 10); err != nil {
				t.Errorf("add score: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}

	if _, err := repo.AddScore(ctx, 9999, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing profile err = %v, want ErrNotFound", err)
	}
}

func TestProfileRepo_Top(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()
	parent := createParent(t, s, "a@example.com")

	scores := map[string]int{"Cal": 30, "Ava": 50, "Ben": 30, "Dee": 0}
	for name, score := range scores {
		p, err := repo.Create(ctx, parent.ID, name)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if score > 0 {
			if _, err := repo.AddScore(ctx, p.ID, score); err != nil {
				t.Fatalf("add score: %v", err)
			}
		}
	}

	top, err := repo.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"Ava", "Ben", "Cal", "Dee"}
	if len(top) != len(want) {
		t.Fatalf("Top returned %d profiles, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("Top[%d] = %s, want %s", i, top[i].Name, name)
		}
	}

	top, err = repo.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Top(2) returned %d profiles", len(top))
	}
}

func TestProfileDeleteCascadesFromParent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	parent := createParent(t, s, "a@example.com")
	p, err := s.ProfileRepo().Create(ctx, parent.ID, "Ava")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.DB().ExecContext(ctx, "DELETE FROM parents WHERE id = ?", parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}
	if _, err := s.ProfileRepo().Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("profile survived parent delete: %v", err)
	}
}

func TestEventRepo_SessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, sid := range []string{"s1", "s2", "s3"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			ProfileID: 1, SessionID: sid, Action: "start", Mode: "multiple_choice", QuestionsTotal: 10,
		}); err != nil {
			t.Fatalf("append start: %v", err)
		}
		if err := repo.AppendSessionEvent(ctx, SessionEventData{
			ProfileID: 1, SessionID: sid, Action: "end", Mode: "multiple_choice",
			QuestionsTotal: 10, QuestionsAnswered: 10, CorrectAnswers: i + 5, Score: (i + 5) * 10, DurationSecs: 60,
		}); err != nil {
			t.Fatalf("append end: %v", err)
		}
	}
	// Another profile's session is not returned.
	if err := repo.AppendSessionEvent(ctx, SessionEventData{ProfileID: 2, SessionID: "x", Action: "end", Mode: "builder"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QuerySessionEvents(ctx, 1, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].SessionID != "s3" || events[2].SessionID != "s1" {
		t.Errorf("events not newest first: %s..%s", events[0].SessionID, events[2].SessionID)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Sequence >= events[i-1].Sequence {
			t.Errorf("sequence not descending at %d", i)
		}
	}
	if events[0].CorrectAnswers != 7 || events[0].Score != 70 {
		t.Errorf("latest event = %+v", events[0].SessionEventData)
	}

	limited, err := repo.QuerySessionEvents(ctx, 1, QueryOpts{Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Errorf("limit: got %d events, err %v", len(limited), err)
	}

	future, err := repo.QuerySessionEvents(ctx, 1, QueryOpts{From: time.Now().UTC().Add(time.Hour)})
	if err != nil || len(future) != 0 {
		t.Errorf("from filter: got %d events, err %v", len(future), err)
	}
}

func TestEventRepo_NoteAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []struct {
		note    string
		correct bool
	}{
		{"A", true}, {"A", true}, {"B♭", false}, {"B♭", true}, {"C♯", false},
	}
	for i, a := range answers {
		err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			ProfileID: 1, SessionID: "s1", QuestionID: i + 1, Note: a.note, Image: "treble_x",
			Given: "?", Correct: a.correct, TimeMs: 1200, AnswerFormat: "multiple_choice",
		})
		if err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	acc, err := repo.NoteAccuracy(ctx, 1)
	if err != nil {
		t.Fatalf("note accuracy: %v", err)
	}
	if len(acc) != 3 {
		t.Fatalf("got %d notes, want 3", len(acc))
	}
	want := []NoteAccuracy{
		{Note: "C♯", Attempts: 1, Correct: 0},
		{Note: "B♭", Attempts: 2, Correct: 1},
		{Note: "A", Attempts: 2, Correct: 2},
	}
	for i := range want {
		if acc[i] != want[i] {
			t.Errorf("acc[%d] = %+v, want %+v", i, acc[i], want[i])
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	second, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if second != first+1 {
		t.Errorf("sequence %d -> %d, want +1", first, second)
	}
}
