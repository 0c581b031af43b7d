package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/flappy/internal/game"
)

// styles are built per client because each SSH session has its own
// lipgloss renderer and colour profile.
type styles struct {
	title lipgloss.Style
	box   lipgloss.Style
	hint  lipgloss.Style
	warn  lipgloss.Style
	hud   lipgloss.Style
	rank  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5c542")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3fb950")).
			Padding(0, 2).
			Align(lipgloss.Center),
		hint: r.NewStyle().Faint(true),
		warn: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		hud:  r.NewStyle().Bold(true),
		rank: r.NewStyle().MarginRight(4),
	}
}

// ASCII art title (figlet "small" font)
var titleArt = []string{
	` ___ _      _   ___ ___ __   __`,
	`| __| |    /_\ | _ \ _ \\ \ / /`,
	`| _|| |__ / _ \|  _/  _/ \ V / `,
	`|_| |____/_/ \_\_| |_|    |_|  `,
}

var controlLines = []string{
	"SPACE / W / Up / click . . Flap",
	"ESC / P  . . . . . . . .  Pause",
	"L  . . . . . . . . Leaderboard",
	"R  . . . . . Reset leaderboard",
	"Q  . . . . . . . . . . . . Quit",
}

// formatEntry renders one leaderboard line as "N. name: score".
func formatEntry(rank int, e game.Entry) string {
	return fmt.Sprintf("%d. %s: %d", rank, e.Name, e.Score)
}

// hudLines is the in-game overlay: score, high score and the top entries.
// Numbers are padded so a shrinking value never leaves residue on screen.
func hudLines(st styles, snap game.Snapshot, players int) []string {
	lines := []string{
		st.hud.Render(fmt.Sprintf("Score: %-6d", snap.Session.Score)),
		fmt.Sprintf("High Score: %-6d", snap.Session.HighScore),
		"Leaderboard:",
	}
	for i, e := range snap.Leaderboard {
		lines = append(lines, formatEntry(i+1, e))
	}
	if players > 0 {
		lines = append(lines, st.hint.Render(fmt.Sprintf("Players: %-4d", players)))
	}
	return lines
}

func startScreen(st styles, playerName string, blink bool) string {
	var b strings.Builder
	b.WriteString(st.title.Render(strings.Join(titleArt, "\n")))
	b.WriteString("\n\n~ Flappy Bird in your terminal ~\n")
	fmt.Fprintf(&b, "Playing as %s\n\n", playerName)
	b.WriteString("Controls\n")
	b.WriteString(strings.Join(controlLines, "\n"))

	prompt := ">>  Press SPACE to Start  <<"
	if !blink {
		prompt = strings.Repeat(" ", len(prompt))
	}
	b.WriteString("\n\n" + prompt)
	return st.box.Render(b.String())
}

func pausedScreen(st styles) string {
	return st.box.Render(st.title.Render("PAUSED") + "\n\n" + st.hint.Render("Press ESC or P to resume"))
}

func gameOverScreen(st styles, s game.SessionState) string {
	lines := []string{
		st.title.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("High Score: %d", s.HighScore),
	}
	if s.Score > 0 && s.Score == s.HighScore {
		lines = append(lines, st.title.Render("New high score!"))
	}
	lines = append(lines, "", "Press SPACE or click to restart", st.hint.Render("L leaderboard   Q quit"))
	return st.box.Render(strings.Join(lines, "\n"))
}

// leaderboardScreen lays the entries out in as many columns as needed to fit
// maxRows terminal rows.
func leaderboardScreen(st styles, entries []game.Entry, maxRows int) string {
	header := st.title.Render("LEADERBOARD")
	footer := st.hint.Render("Press L to close leaderboard   R to reset")

	var body string
	if len(entries) == 0 {
		body = "No scores yet"
	} else {
		// Border, title, footer and spacing take 6 rows.
		perCol := max(maxRows-6, 5)
		var cols []string
		for start := 0; start < len(entries); start += perCol {
			end := min(start+perCol, len(entries))
			lines := make([]string, 0, end-start)
			for i := start; i < end; i++ {
				lines = append(lines, formatEntry(i+1, entries[i]))
			}
			style := st.rank
			if end == len(entries) {
				style = style.MarginRight(0)
			}
			cols = append(cols, style.Render(strings.Join(lines, "\n")))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Center, header, "", body, "", footer))
}

func inactivityScreen(st styles, left time.Duration) string {
	lines := []string{
		st.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %3d seconds.", int(left.Seconds())),
		"",
		st.hint.Render("Press any key to continue"),
	}
	return st.box.Render(strings.Join(lines, "\n"))
}

func shutdownScreen(st styles, left time.Duration) string {
	lines := []string{
		st.warn.Render("SERVER SHUTTING DOWN"),
		"",
		fmt.Sprintf("Disconnecting in %2d seconds", int(left.Seconds())),
		"",
		st.hint.Render("Thanks for playing!"),
	}
	return st.box.Render(strings.Join(lines, "\n"))
}
