package game

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/store"
)

// failingStore reads as empty and refuses every write.
type failingStore struct {
	updates int
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, nil }

func (f *failingStore) Update(func(store.Tx) error) error {
	f.updates++
	return errors.New("disk full")
}

func (f *failingStore) Close() error { return nil }

// countingStore wraps Memory and counts commits.
type countingStore struct {
	*store.Memory
	updates int
}

func (c *countingStore) Update(fn func(store.Tx) error) error {
	c.updates++
	return c.Memory.Update(fn)
}

func newCountingStore() *countingStore {
	return &countingStore{Memory: store.NewMemory()}
}

func TestSessionScoreIncrementRecomputesSpeed(t *testing.T) {
	speed := config.DefaultTuning().Speed
	s := NewSession("A", speed, nil, nil)
	if s.Speed != speed.Base {
		t.Fatalf("initial speed = %g, want %g", s.Speed, speed.Base)
	}
	for i := 1; i <= 5; i++ {
		s.OnScoreIncrement()
		if s.Score != i {
			t.Fatalf("score = %d, want %d", s.Score, i)
		}
		if want := speed.Base + float64(i)*speed.Growth; s.Speed != want {
			t.Fatalf("speed at score %d = %g, want %g", i, s.Speed, want)
		}
	}
}

func TestSessionOnRunEndPersists(t *testing.T) {
	st := newCountingStore()
	s := NewSession("A", config.DefaultTuning().Speed, st, nil)

	if err := s.OnRunEnd(10); err != nil {
		t.Fatalf("OnRunEnd: %v", err)
	}
	if s.HighScore != 10 {
		t.Fatalf("high score = %d, want 10", s.HighScore)
	}
	if err := s.OnRunEnd(4); err != nil {
		t.Fatalf("OnRunEnd: %v", err)
	}
	if s.HighScore != 10 {
		t.Fatalf("lower run changed high score to %d", s.HighScore)
	}
	if st.updates != 2 {
		t.Fatalf("store updates = %d, want 2", st.updates)
	}

	p, err := LoadProgress(st)
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if p.HighScore != 10 {
		t.Fatalf("persisted high = %d", p.HighScore)
	}
	if got := p.Leaderboard.Entries(); !reflect.DeepEqual(got, []Entry{{"A", 10}}) {
		t.Fatalf("persisted board = %v", got)
	}
}

func TestSessionZeroScoreSkipsLeaderboard(t *testing.T) {
	s := NewSession("A", config.DefaultTuning().Speed, store.NewMemory(), nil)
	if err := s.OnRunEnd(0); err != nil {
		t.Fatalf("OnRunEnd: %v", err)
	}
	if s.Leaderboard().Len() != 0 {
		t.Fatalf("zero score added an entry")
	}
}

func TestSessionWriteFailureKeepsMemoryState(t *testing.T) {
	st := &failingStore{}
	s := NewSession("A", config.DefaultTuning().Speed, st, nil)
	err := s.OnRunEnd(7)
	if err == nil {
		t.Fatalf("expected error from failing store")
	}
	if s.HighScore != 7 {
		t.Fatalf("high score = %d, want 7 despite failed save", s.HighScore)
	}
	if got := s.Leaderboard().Entries(); !reflect.DeepEqual(got, []Entry{{"A", 7}}) {
		t.Fatalf("board = %v", got)
	}
}

func TestSessionMergesConcurrentWriters(t *testing.T) {
	st := store.NewMemory()
	speed := config.DefaultTuning().Speed
	a := NewSession("A", speed, st, nil)
	b := NewSession("B", speed, st, nil)

	if err := a.OnRunEnd(5); err != nil {
		t.Fatalf("a: %v", err)
	}
	if err := b.OnRunEnd(3); err != nil {
		t.Fatalf("b: %v", err)
	}

	p, _ := LoadProgress(st)
	if p.HighScore != 5 {
		t.Fatalf("high = %d, want 5", p.HighScore)
	}
	want := []Entry{{"A", 5}, {"B", 3}}
	if got := p.Leaderboard.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("board = %v, want %v", got, want)
	}
	if b.HighScore != 5 {
		t.Fatalf("b did not pick up shared high score: %d", b.HighScore)
	}
}

func TestSessionReset(t *testing.T) {
	speed := config.DefaultTuning().Speed
	s := NewSession("A", speed, store.NewMemory(), nil)
	s.OnScoreIncrement()
	s.FrameCount = 99
	_ = s.OnRunEnd(s.Score)

	s.Reset()
	want := SessionState{Score: 0, Speed: speed.Base, FrameCount: 0, HighScore: 1}
	if s.SessionState != want {
		t.Fatalf("after reset = %+v, want %+v", s.SessionState, want)
	}
	if s.Leaderboard().Len() != 1 {
		t.Fatalf("reset touched leaderboard")
	}
}

func TestSessionResetLeaderboard(t *testing.T) {
	st := store.NewMemory()
	s := NewSession("A", config.DefaultTuning().Speed, st, nil)
	_ = s.OnRunEnd(9)

	if err := s.ResetLeaderboard(); err != nil {
		t.Fatalf("ResetLeaderboard: %v", err)
	}
	if s.Leaderboard().Len() != 0 {
		t.Fatalf("leaderboard not cleared")
	}
	if s.HighScore != 9 {
		t.Fatalf("high score changed to %d", s.HighScore)
	}
	p, _ := LoadProgress(st)
	if p.HighScore != 9 || p.Leaderboard.Len() != 0 {
		t.Fatalf("persisted = high %d, %d entries", p.HighScore, p.Leaderboard.Len())
	}
}

func TestSessionRunEndRespectsResetFromOtherSession(t *testing.T) {
	st := store.NewMemory()
	speed := config.DefaultTuning().Speed
	if err := NewSession("Old", speed, st, nil).OnRunEnd(50); err != nil {
		t.Fatalf("old: %v", err)
	}

	a := NewSession("A", speed, st, nil)
	if a.Leaderboard().Len() != 1 {
		t.Fatalf("a should load the existing entry")
	}
	if err := NewSession("B", speed, st, nil).ResetLeaderboard(); err != nil {
		t.Fatalf("b reset: %v", err)
	}
	if err := a.OnRunEnd(3); err != nil {
		t.Fatalf("a: %v", err)
	}

	want := []Entry{{"A", 3}}
	p, _ := LoadProgress(st)
	if got := p.Leaderboard.Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("stored board = %v, want %v", got, want)
	}
	if got := a.Leaderboard().Entries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("a board = %v, want %v", got, want)
	}
	if p.HighScore != 50 {
		t.Fatalf("high score = %d, want 50", p.HighScore)
	}
}

func TestSessionCorruptFileIsNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := store.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	s := NewSession("A", config.DefaultTuning().Speed, st, nil)
	if err := s.OnRunEnd(4); !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("OnRunEnd = %v, want ErrCorrupt", err)
	}
	if s.HighScore != 4 {
		t.Fatalf("high score = %d, want 4 in memory", s.HighScore)
	}
}

func TestSessionResetLeaderboardFailure(t *testing.T) {
	s := NewSession("A", config.DefaultTuning().Speed, &failingStore{}, nil)
	if err := s.ResetLeaderboard(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewSessionLoadsProgress(t *testing.T) {
	st := store.NewMemory()
	_ = saveProgress(st, Progress{HighScore: 30, Leaderboard: NewLeaderboard([]Entry{{"Z", 30}})})
	s := NewSession("A", config.DefaultTuning().Speed, st, nil)
	if s.HighScore != 30 || s.Leaderboard().Len() != 1 {
		t.Fatalf("loaded high=%d entries=%d", s.HighScore, s.Leaderboard().Len())
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "Player"},
		{"   ", "Player"},
		{"  ada  ", "ada"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
		{"ééééééééééééééééééé", "éééééééééééééééé"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
