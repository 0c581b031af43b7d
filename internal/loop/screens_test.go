package loop

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/flappy/internal/game"
)

func plainStyles() styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return newStyles(r)
}

func TestHUDLines(t *testing.T) {
	snap := game.Snapshot{
		Session:     game.SessionState{Score: 3, HighScore: 12},
		Leaderboard: []game.Entry{{Name: "ada", Score: 12}, {Name: "bob", Score: 7}},
	}
	got := strings.Join(hudLines(plainStyles(), snap, 0), "\n")
	for _, want := range []string{"Score: 3", "High Score: 12", "Leaderboard:", "1. ada: 12", "2. bob: 7"} {
		if !strings.Contains(got, want) {
			t.Fatalf("HUD missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Players") {
		t.Fatalf("single-player HUD shows player count")
	}

	got = strings.Join(hudLines(plainStyles(), snap, 4), "\n")
	if !strings.Contains(got, "Players: 4") {
		t.Fatalf("HUD missing player count:\n%s", got)
	}
}

func TestLeaderboardScreen(t *testing.T) {
	st := plainStyles()

	empty := leaderboardScreen(st, nil, 40)
	if !strings.Contains(empty, "No scores yet") || !strings.Contains(empty, "Press L to close leaderboard") {
		t.Fatalf("empty leaderboard:\n%s", empty)
	}

	var entries []game.Entry
	for i := 100; i > 0; i-- {
		entries = append(entries, game.Entry{Name: fmt.Sprintf("p%d", i), Score: i})
	}
	full := leaderboardScreen(st, entries, 30)
	if !strings.Contains(full, "1. p100: 100") || !strings.Contains(full, "100. p1: 1") {
		t.Fatalf("full leaderboard missing first or last entry")
	}
	if h := lipgloss.Height(full); h > 30 {
		t.Fatalf("leaderboard is %d rows, want at most 30", h)
	}
}

func TestGameOverScreen(t *testing.T) {
	got := gameOverScreen(plainStyles(), game.SessionState{Score: 5, HighScore: 5})
	for _, want := range []string{"GAME OVER", "Score: 5", "High Score: 5", "New high score!"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(gameOverScreen(plainStyles(), game.SessionState{Score: 2, HighScore: 5}), "New high score!") {
		t.Fatalf("non-record run celebrated")
	}
}

func TestStartScreenBlinkKeepsWidth(t *testing.T) {
	st := plainStyles()
	on := startScreen(st, "ada", true)
	off := startScreen(st, "ada", false)
	if !strings.Contains(on, "Press SPACE to Start") || strings.Contains(off, "Press SPACE to Start") {
		t.Fatalf("blink did not toggle the prompt")
	}
	if lipgloss.Width(on) != lipgloss.Width(off) || lipgloss.Height(on) != lipgloss.Height(off) {
		t.Fatalf("blink changed the box size")
	}
	if !strings.Contains(on, "Playing as ada") {
		t.Fatalf("player name missing")
	}
}

func TestCountdownScreens(t *testing.T) {
	st := plainStyles()
	if got := inactivityScreen(st, 25*time.Second); !strings.Contains(got, " 25 seconds") {
		t.Fatalf("inactivity countdown:\n%s", got)
	}
	if got := shutdownScreen(st, 7*time.Second); !strings.Contains(got, "Disconnecting in  7 seconds") {
		t.Fatalf("shutdown countdown:\n%s", got)
	}
}
