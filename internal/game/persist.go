package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomz197/flappy/internal/store"
)

// Persisted keys.
const (
	KeyHighScore   = "flappyHighScore"
	KeyLeaderboard = "flappyLeaderboard"
)

// Progress is the persisted part of a session.
type Progress struct {
	HighScore   int
	Leaderboard Leaderboard
}

// LoadProgress reads progress from st. Malformed values fall back to zero
// values; only store failures are returned.
func LoadProgress(st store.Store) (Progress, error) {
	var p Progress
	if st == nil {
		return p, nil
	}
	if v, ok, err := st.Get(KeyHighScore); err != nil {
		return p, fmt.Errorf("load high score: %w", err)
	} else if ok {
		p.HighScore, _ = parseHighScore(v)
	}
	if v, ok, err := st.Get(KeyLeaderboard); err != nil {
		return p, fmt.Errorf("load leaderboard: %w", err)
	} else if ok {
		entries, _ := parseLeaderboard(v)
		p.Leaderboard = NewLeaderboard(entries)
	}
	return p, nil
}

// readProgress is LoadProgress inside a transaction.
func readProgress(tx store.Tx) Progress {
	var p Progress
	if v, ok := tx.Get(KeyHighScore); ok {
		p.HighScore, _ = parseHighScore(v)
	}
	if v, ok := tx.Get(KeyLeaderboard); ok {
		entries, _ := parseLeaderboard(v)
		p.Leaderboard = NewLeaderboard(entries)
	}
	return p
}

// writeProgress stores both keys in tx.
func writeProgress(tx store.Tx, p Progress) error {
	board, err := formatLeaderboard(p.Leaderboard.Entries())
	if err != nil {
		return err
	}
	tx.Set(KeyHighScore, formatHighScore(p.HighScore))
	tx.Set(KeyLeaderboard, board)
	return nil
}

func parseHighScore(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatHighScore(n int) string {
	return strconv.Itoa(n)
}

func parseLeaderboard(v string) ([]Entry, bool) {
	var entries []Entry
	if err := json.Unmarshal([]byte(v), &entries); err != nil {
		return nil, false
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Name == "" || e.Score < 0 {
			continue
		}
		kept = append(kept, e)
	}
	return kept, true
}

func formatLeaderboard(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode leaderboard: %w", err)
	}
	return string(data), nil
}
