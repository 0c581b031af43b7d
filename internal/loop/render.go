package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/draw"
	"github.com/tomz197/flappy/internal/game"
)

// Canvas palette.
const (
	colorBird draw.Color = iota + 1
	colorPipe
	colorFeather
)

var palette = []string{"#f5c542", "#3fb950", "#f0883e"}

// overlay is client-side state shown on top of the game.
type overlay struct {
	players      int
	blink        bool
	idle         bool
	idleLeft     time.Duration
	shutdown     bool
	shutdownLeft time.Duration
}

// renderer draws game snapshots to one terminal.
type renderer struct {
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	st       styles
	sizeFunc draw.TermSizeFunc

	layout draw.Layout
	key    string // Changes force a full clear
	sized  bool
}

func newRenderer(w io.Writer, lr *lipgloss.Renderer, sizeFunc draw.TermSizeFunc, screen config.ScreenTuning) *renderer {
	r := &renderer{
		canvas:   draw.NewScaledCanvas(1, 1, screen.Width, screen.Height),
		cw:       draw.NewChunkWriter(w, 0, 0),
		st:       newStyles(lr),
		sizeFunc: sizeFunc,
	}
	r.canvas.SetPalette(lr.ColorProfile(), palette...)
	return r
}

// screenKey identifies which overlays are on screen. Text from one screen is
// not erased by the canvas diff, so a change of key clears the terminal.
func screenKey(snap game.Snapshot, ov overlay) string {
	return fmt.Sprintf("%s|%t|%t|%t|%d", snap.Mode, ov.idle, ov.shutdown, snap.Warning != "", len(snap.Leaderboard))
}

// frame draws one complete frame and flushes it.
func (r *renderer) frame(snap game.Snapshot, ov overlay, fx *effects) error {
	termW, termH, err := draw.TerminalSizeRawWith(r.sizeFunc)
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	layout := draw.Fit(termW, termH, snap.Screen.Width, snap.Screen.Height, maxCanvasCols)
	key := screenKey(snap, ov)

	if !r.sized || layout != r.layout || key != r.key {
		r.sized = true
		r.layout = layout
		r.key = key
		r.canvas.Resize(layout.Cols, layout.Rows)
		r.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
		r.cw.SetOffset(layout.OffsetCol, layout.OffsetRow)
		r.cw.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.canvas.RenderBorder(r.cw)
	}

	r.canvas.Clear()
	r.paintWorld(snap)
	if fx != nil {
		fx.paint(r.canvas, colorFeather)
	}
	r.canvas.Render(r.cw)
	r.drawText(snap, ov)

	return r.cw.Flush()
}

func (r *renderer) paintWorld(snap game.Snapshot) {
	h := snap.Screen.Height
	for _, o := range snap.Obstacles {
		r.canvas.FillRect(o.X, 0, o.Width, o.GapTop, colorPipe)
		r.canvas.FillRect(o.X, o.GapBottom, o.Width, h-o.GapBottom, colorPipe)
	}
	b := snap.Body
	r.canvas.FillRect(b.X, b.Y, b.Width, b.Height, colorBird)
}

func (r *renderer) drawText(snap game.Snapshot, ov overlay) {
	switch {
	case ov.shutdown:
		r.centered(shutdownScreen(r.st, ov.shutdownLeft))
		return
	case ov.idle:
		r.centered(inactivityScreen(r.st, ov.idleLeft))
		return
	}

	if snap.Mode == game.ModeLeaderboardView {
		r.centered(leaderboardScreen(r.st, snap.Leaderboard, r.layout.Rows))
		r.drawWarning(snap)
		return
	}

	for i, line := range hudLines(r.st, snap, ov.players) {
		r.cw.WriteAt(2, i+1, line)
	}
	switch snap.Mode {
	case game.ModeNotStarted:
		r.centered(startScreen(r.st, snap.PlayerName, ov.blink))
	case game.ModePaused:
		r.centered(pausedScreen(r.st))
	case game.ModeGameOver:
		r.centered(gameOverScreen(r.st, snap.Session))
	}
	r.drawWarning(snap)
}

func (r *renderer) drawWarning(snap game.Snapshot) {
	if snap.Warning == "" {
		return
	}
	r.cw.WriteAt(2, r.layout.Rows, r.st.warn.Render("! "+snap.Warning))
}

// centered writes a block in the middle of the canvas.
func (r *renderer) centered(block string) {
	row := max((r.layout.Rows-lipgloss.Height(block))/2+1, 1)
	r.cw.WriteCentered(r.layout.Cols, row, block)
}
