package game

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/store"
)

// SessionState is the per-run scoring state plus the persisted high score.
type SessionState struct {
	Score      int
	Speed      float64
	FrameCount int
	HighScore  int
}

// Session tracks score and difficulty for one player and reconciles finished
// runs with the persisted high score and leaderboard.
type Session struct {
	SessionState
	PlayerName string

	board  Leaderboard
	speed  config.SpeedTuning
	store  store.Store
	logger *log.Logger
}

// NewSession loads persisted progress from st (which may be nil) and returns
// a session ready for its first run. Load failures are logged and the
// session starts from defaults.
func NewSession(playerName string, speed config.SpeedTuning, st store.Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		PlayerName: NormalizeName(playerName),
		speed:      speed,
		store:      st,
		logger:     logger,
	}
	progress, err := LoadProgress(st)
	if err != nil {
		logger.Warn("could not load progress, starting fresh", "err", err)
	}
	s.HighScore = progress.HighScore
	s.board = progress.Leaderboard
	s.Reset()
	return s
}

// NormalizeName trims name, caps it at config.MaxUsernameLength runes and
// falls back to config.DefaultPlayerName when nothing is left.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > config.MaxUsernameLength {
		name = strings.TrimSpace(string([]rune(name)[:config.MaxUsernameLength]))
	}
	if name == "" {
		return config.DefaultPlayerName
	}
	return name
}

// OnScoreIncrement adds a point and recomputes the scroll speed.
func (s *Session) OnScoreIncrement() {
	s.Score++
	s.Speed = s.speedFor(s.Score)
}

func (s *Session) speedFor(score int) float64 {
	return s.speed.Base + float64(score)*s.speed.Growth
}

// OnRunEnd folds a finished run into the high score and leaderboard and
// persists both in one transaction. The in-memory state is updated even when
// the write fails; the returned error only means progress was not saved.
func (s *Session) OnRunEnd(score int) error {
	if score > s.HighScore {
		s.HighScore = score
	}
	if score > 0 {
		s.board.Submit(s.PlayerName, score)
	}
	if s.store == nil {
		return nil
	}

	err := s.store.Update(func(tx store.Tx) error {
		// Start from the stored board; other sessions may have added entries
		// or cleared it since this one loaded.
		persisted := readProgress(tx)
		if persisted.HighScore > s.HighScore {
			s.HighScore = persisted.HighScore
		}
		board := persisted.Leaderboard
		if score > 0 {
			board.Submit(s.PlayerName, score)
		}
		s.board = board
		return writeProgress(tx, Progress{HighScore: s.HighScore, Leaderboard: s.board})
	})
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	s.logger.Debug("run saved", "player", s.PlayerName, "score", score, "high", s.HighScore)
	return nil
}

// Reset restores score, speed and frame count for a new run. The high score
// and leaderboard are kept.
func (s *Session) Reset() {
	s.Score = 0
	s.Speed = s.speedFor(0)
	s.FrameCount = 0
}

// ResetLeaderboard empties the leaderboard and persists the empty list. The
// high score is kept.
func (s *Session) ResetLeaderboard() error {
	s.board.Clear()
	if s.store == nil {
		return nil
	}
	err := s.store.Update(func(tx store.Tx) error {
		board, err := formatLeaderboard(nil)
		if err != nil {
			return err
		}
		tx.Set(KeyLeaderboard, board)
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

// Leaderboard returns a copy of the leaderboard.
func (s *Session) Leaderboard() Leaderboard {
	return Leaderboard{entries: s.board.Entries()}
}
